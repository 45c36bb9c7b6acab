package model

// Names of the virtual components framing every workflow graph.
const (
	StartComponentName = "start"
	EndComponentName   = "end"
)

// ComponentInfo describes one component of a workflow.
type ComponentInfo struct {
	Name       string
	Output     string
	Inputs     []string
	Index      int
	Accumulate bool
}

// Terminal reports whether the component writes no slot.
func (ci *ComponentInfo) Terminal() bool {
	return ci.Output == ""
}

// Link is a data dependency: To reads Slot, last written by From.
// From is StartComponentName when the slot was seeded before the run.
type Link struct {
	From string
	To   string
	Slot string
}

// WorkflowInfo describes a workflow about to run.
type WorkflowInfo struct {
	Name       string
	Components []*ComponentInfo
	Links      []Link
}

var (
	StartComponent = &ComponentInfo{Name: StartComponentName, Index: -1}
	EndComponent   = &ComponentInfo{Name: EndComponentName, Index: -1}
)
