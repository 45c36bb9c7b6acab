// Package model provides the data structures shared by the workflow package and its options.
// It describes a workflow as seen by the options: the workflow itself, its components,
// the links between components and the hooks an option receives during a run.
package model
