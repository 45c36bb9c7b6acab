package workflow

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/store"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

// Workflow is an ordered list of components. Components run in declaration order,
// nothing is reordered.
type Workflow struct {
	Name       string
	Components []ComponentDescription
}

// NewWorkflow returns a workflow running components in the given order.
func NewWorkflow(name string, components ...ComponentDescription) *Workflow {
	return &Workflow{
		Name:       name,
		Components: components,
	}
}

// Concat returns a workflow running the components of every workflow one after the other.
func Concat(name string, workflows ...*Workflow) *Workflow {
	wf := &Workflow{Name: name}
	for _, w := range workflows {
		if w == nil {
			continue
		}
		wf.Components = append(wf.Components, w.Components...)
	}

	return wf
}

// Producers returns the names of the components writing slot, in execution order.
func (wf *Workflow) Producers(slot Slot) []string {
	var names []string
	for _, cd := range wf.Components {
		if cd.Output == slot {
			names = append(names, cd.Name)
		}
	}

	return names
}

// Check validates every component and the uniqueness of their names.
func (wf *Workflow) Check() error {
	seen := make(map[string]struct{}, len(wf.Components))
	for _, cd := range wf.Components {
		err := cd.Validate()
		if err != nil {
			return errors.Wrapf(err, "workflow %s", wf.Name)
		}
		if _, ok := seen[cd.Name]; ok {
			return errors.Wrapf(ErrInvalidComponent, "workflow %s: duplicate component %s", wf.Name, cd.Name)
		}
		seen[cd.Name] = struct{}{}
	}

	return nil
}

// Validate checks that, given the seeded slots, every input of every component is bound
// before the component runs.
func (wf *Workflow) Validate(seeded ...Slot) error {
	err := wf.Check()
	if err != nil {
		return err
	}

	_, unresolved := wf.links(seeded)
	if len(unresolved) > 0 {
		return errors.Wrapf(unresolved[0], "workflow %s: %d unresolved input(s)", wf.Name, len(unresolved))
	}

	return nil
}

// Info describes the workflow for executor options.
func (wf *Workflow) Info(seeded ...Slot) *model.WorkflowInfo {
	links, _ := wf.links(seeded)
	info := &model.WorkflowInfo{
		Name:       wf.Name,
		Components: make([]*model.ComponentInfo, len(wf.Components)),
		Links:      links,
	}
	for i, cd := range wf.Components {
		info.Components[i] = cd.info(i)
	}

	return info
}

// Graph returns the dependency graph of the workflow. Vertices are component names
// plus the virtual start and end components, edges carry the slots as label.
func (wf *Workflow) Graph(seeded ...Slot) (graph.Graph[string, string], error) {
	err := wf.Check()
	if err != nil {
		return nil, err
	}

	return NewDependencyGraph(wf.Info(seeded...))
}

// NewDependencyGraph builds the graph described by info.
func NewDependencyGraph(info *model.WorkflowInfo) (graph.Graph[string, string], error) {
	gra := graph.NewWithStore(graph.StringHash, store.NewMemoryStore[string, string](), graph.Directed(), graph.PreventCycles())

	for _, name := range []string{model.StartComponentName, model.EndComponentName} {
		err := gra.AddVertex(name)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add %s vertex", name)
		}
	}

	for _, ci := range info.Components {
		err := gra.AddVertex(ci.Name, graph.VertexAttribute("output", ci.Output))
		if err != nil {
			return nil, errors.Wrapf(err, "unable to add vertex %s", ci.Name)
		}
	}

	for _, link := range info.Links {
		err := addLink(gra, link.From, link.To, link.Slot)
		if err != nil {
			return nil, err
		}
	}

	for _, ci := range info.Components {
		if !ci.Terminal() {
			continue
		}
		err := addLink(gra, ci.Name, model.EndComponentName, "")
		if err != nil {
			return nil, err
		}
	}

	return gra, nil
}

func addLink(gra graph.Graph[string, string], from, to, slot string) error {
	err := gra.AddEdge(from, to, graph.EdgeAttribute("label", slot))
	if err == nil {
		return nil
	}
	if !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to add edge from %s to %s", from, to)
	}

	edge, err := gra.Edge(from, to)
	if err != nil {
		return errors.Wrapf(err, "unable to get edge from %s to %s", from, to)
	}
	label := edge.Properties.Attributes["label"]
	if label != "" && slot != "" {
		label += ", "
	}

	err = gra.UpdateEdge(from, to, graph.EdgeAttribute("label", label+slot))
	if err != nil {
		return errors.Wrapf(err, "unable to update edge from %s to %s", from, to)
	}

	return nil
}

// links resolves every component input to the component last writing it before, or
// to the start component for seeded slots.
func (wf *Workflow) links(seeded []Slot) ([]model.Link, []error) {
	producer := make(map[Slot]string, len(seeded))
	for _, slot := range seeded {
		producer[slot] = model.StartComponentName
	}

	var (
		links      []model.Link
		unresolved []error
	)
	for _, cd := range wf.Components {
		for _, slot := range cd.Inputs {
			from, ok := producer[slot]
			if !ok {
				unresolved = append(unresolved, &SlotError{Kind: ErrSlotUnresolved, Slot: slot, Component: cd.Name})
				continue
			}
			links = append(links, model.Link{From: from, To: cd.Name, Slot: string(slot)})
		}
		if !cd.Terminal() {
			producer[cd.Output] = cd.Name
		}
	}

	return links, unresolved
}
