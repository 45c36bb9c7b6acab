// Package workflow provides the dataflow core of the code generator.
//
// A workflow is an ordered list of components. Each component declares the slots it reads and the single slot it
// writes, and is bound to a capability producing the value of that slot from the resolved inputs. Slots are named
// channels held by a Context, the only medium through which components communicate.
//
// The Executor runs a workflow against a Context in declaration order. Inputs are resolved just before a component
// runs and the run stops on the first unresolved slot or failing capability: a run is all or nothing. Components
// either overwrite their output slot or, when accumulating, merge their units into the list already held by it.
//
// Ordering is the responsibility of whoever assembles the workflow. Workflow.Validate checks it before anything runs
// by building the dependency graph of the components, so an assembly mistake surfaces at construction time instead of
// halfway through a generation.
package workflow
