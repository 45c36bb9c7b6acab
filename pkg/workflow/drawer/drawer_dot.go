package drawer

import (
	"fmt"
	"io"
	"sort"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/store"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/measure"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

// DOTDrawer is a drawer that writes the workflow graph in the DOT language.
type DOTDrawer struct {
	graph    graph.Graph[string, string]
	output   io.Writer
	fs       afero.Fs
	fileName string
}

// NewDOTDrawer creates a drawer writing to fileName on fs. The file is only created
// when the graph is drawn.
func NewDOTDrawer(fs afero.Fs, fileName string) *DOTDrawer {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	d := &DOTDrawer{fs: fs, fileName: fileName}
	d.Reset()

	return d
}

// NewDOTDrawerTo creates a drawer writing to output.
func NewDOTDrawerTo(output io.Writer) *DOTDrawer {
	d := &DOTDrawer{output: output}
	d.Reset()

	return d
}

func (d *DOTDrawer) Reset() {
	d.graph = graph.NewWithStore(graph.StringHash, store.NewMemoryStore[string, string](), graph.Directed())
}

// Load replaces the graph with the dependency graph of workflow.
func (d *DOTDrawer) Load(info *model.WorkflowInfo) error {
	gra, err := workflow.NewDependencyGraph(info)
	if err != nil {
		return errors.Wrapf(err, "unable to build graph of workflow %s", info.Name)
	}
	d.graph = gra

	return nil
}

// Draw writes the graph.
func (d *DOTDrawer) Draw() error {
	if d.output != nil {
		return dot(d.graph, d.output)
	}

	file, err := d.fs.Create(d.fileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.fileName)
	}
	defer file.Close()

	err = dot(d.graph, file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.fileName)
	}

	return nil
}

// SetTotalTime sets the total time for the step.
func (d *DOTDrawer) SetTotalTime(stepName string, totalTime time.Duration) error {
	_, properties, err := d.graph.VertexWithProperties(stepName)
	if err != nil {
		return errors.Wrap(err, "unable to get end vertex properties")
	}

	properties.Attributes["xlabel"] = totalTime.String()

	return nil
}

const maxRGB = 240

// AddMeasure labels every measured component with its average duration and colours
// it from blue (fastest) to red (slowest).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	var minValue, maxValue time.Duration
	first := true
	for _, step := range msr.AllMetrics() {
		avg := step.AVGDuration()
		if avg == 0 {
			continue
		}
		if first || avg < minValue {
			minValue = avg
		}
		if first || avg > maxValue {
			maxValue = avg
		}
		first = false
	}

	for name, step := range msr.AllMetrics() {
		avg := step.AVGDuration()
		if avg == 0 {
			continue
		}

		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrapf(err, "unable to get vertex %s properties", name)
		}

		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(avg-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		properties.Attributes["xlabel"] = avg.String()
		properties.Attributes["color"] = colour.ToHEX().String()
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(g graph.Graph[string, string], wrt io.Writer) error {
	desc, err := generateDOT(g)
	if err != nil {
		return fmt.Errorf("failed to generate DOT description: %w", err)
	}

	return renderDOT(wrt, desc)
}

func generateDOT(gra graph.Graph[string, string]) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}
	sort.Strings(vertices)

	for _, vertex := range vertices {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		htmlAttributes := make(map[string]string)
		sourceAttributes := make(map[string]string, len(sourceProperties.Attributes))
		for k, v := range sourceProperties.Attributes {
			sourceAttributes[k] = v
		}

		if xlabel, ok := sourceAttributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, xlabel)

			delete(sourceAttributes, "xlabel")
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		})

		adjacencies := adjacencyMap[vertex]
		targets := make([]string, 0, len(adjacencies))
		for target := range adjacencies {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			edge := adjacencies[target]
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
