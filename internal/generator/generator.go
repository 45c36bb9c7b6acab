// Package generator runs a complete code generation: it loads the domain model, builds the
// workflow of the configured flavour and saves the generated files.
package generator

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/config"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain/yamlanalyzer"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine/filewriter"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine/filter"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine/php"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/drawer"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/logging"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/measure"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow/model"
)

// SlotDomainModel holds the domain analyzer read by every generation component.
const SlotDomainModel workflow.Slot = "domain_model"

var ErrConfigMustBeSet = errors.New("config must be set")

// Generator runs the workflows of one configuration.
type Generator struct {
	cfg    *config.Config
	logger *zap.Logger
	fs     afero.Fs
}

type Option func(*Generator)

// WithFs replaces the operating system file system, for the model, the generated files
// and the DOT output alike.
func WithFs(fs afero.Fs) Option {
	return func(g *Generator) {
		if fs != nil {
			g.fs = fs
		}
	}
}

func New(cfg *config.Config, logger *zap.Logger, options ...Option) (*Generator, error) {
	if cfg == nil {
		return nil, ErrConfigMustBeSet
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{
		cfg:    cfg,
		logger: logger,
		fs:     afero.NewOsFs(),
	}
	for _, option := range options {
		option(g)
	}

	return g, nil
}

// Result describes a finished generation.
type Result struct {
	Flavour string
	// Files lists the written paths, sorted. In dry run mode nothing was written to disk.
	Files  []string
	DryRun bool
	// Durations holds the timing of every component that ran.
	Durations map[string]Timing
	Total     time.Duration
}

type Timing struct {
	Avg  time.Duration
	Max  time.Duration
	Runs int64
}

// Run generates the code of the configured flavour.
func (g *Generator) Run() (*Result, error) {
	policy, err := workflow.ParseWritePolicy(g.cfg.WritePolicy)
	if err != nil {
		return nil, err
	}

	domainModel, err := g.loadModel()
	if err != nil {
		return nil, err
	}

	wctx := workflow.NewContext()
	wctx.Put(SlotDomainModel, workflow.Model(domainModel))

	writer := filewriter.New(
		filewriter.WithFs(g.fs),
		filewriter.WithConcurrency(g.cfg.Concurrency),
		filewriter.WithDryRun(g.cfg.DryRun),
		filewriter.WithLogger(g.logger),
	)

	wf, err := g.Workflow(wctx, writer)
	if err != nil {
		return nil, err
	}

	msr := measure.NewDefaultMeasure()
	opts := []model.WorkflowOption{
		logging.WorkflowLogger(g.logger),
		measure.WorkflowMeasure(msr),
	}

	if g.cfg.Dot != "" {
		opts = append(opts, drawer.WorkflowDrawer(drawer.NewDOTDrawer(g.fs, g.cfg.Dot), msr))
	}

	exec, err := workflow.NewExecutor(
		workflow.WithOptions(opts...),
		workflow.WithWritePolicy(policy),
	)
	if err != nil {
		return nil, err
	}

	err = exec.Run(wf, wctx)
	if err != nil {
		return nil, err
	}

	return g.result(writer, msr), nil
}

// Workflow seeds wctx and returns the generation workflow of the configured flavour,
// followed by the workflow saving its code through writer.
func (g *Generator) Workflow(wctx *workflow.Context, writer eventengine.FileWriter) (*workflow.Workflow, error) {
	filters := filter.Defaults(g.cfg.Source.Dir, g.cfg.Source.Namespace)
	printer := php.NewPrinter()
	options := []eventengine.FactoryOption{eventengine.WithAggregateFolder(g.cfg.AggregateFolder)}

	var (
		generate *workflow.Workflow
		save     *workflow.Workflow
		err      error
	)

	switch g.cfg.Flavour {
	case config.FlavourPrototype:
		generate, err = eventengine.PrototypeConfig(wctx, SlotDomainModel,
			g.cfg.Prototype.DomainModelPath,
			g.cfg.Prototype.APIDescriptionPath,
			filters, printer, options...)
		if err != nil {
			return nil, err
		}
		save, err = eventengine.CodeToFilesForPrototypeConfig(writer)
	case config.FlavourFunctional:
		generate, err = eventengine.FunctionalConfig(wctx, SlotDomainModel,
			g.cfg.Functional.CommandPath,
			g.cfg.Functional.EventPath,
			g.cfg.Functional.ValueObjectPath,
			filters, printer, options...)
		if err != nil {
			return nil, err
		}
		save, err = eventengine.CodeToFilesForFunctionalConfig(writer)
	default:
		return nil, errors.Wrapf(config.ErrInvalidConfig, "unknown flavour %q", g.cfg.Flavour)
	}
	if err != nil {
		return nil, err
	}

	return workflow.Concat(g.cfg.Flavour, generate, save), nil
}

func (g *Generator) loadModel() (*domain.Model, error) {
	f, err := g.fs.Open(g.cfg.Model)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open domain model %s", g.cfg.Model)
	}
	defer f.Close()

	domainModel, err := yamlanalyzer.Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "domain model %s", g.cfg.Model)
	}

	g.logger.Info("domain model loaded",
		zap.String("path", g.cfg.Model),
		zap.Int("aggregates", len(domainModel.Aggregates())),
		zap.Int("value_objects", len(domainModel.ValueObjects())),
	)

	return domainModel, nil
}

func (g *Generator) result(writer *filewriter.Writer, msr measure.Measure) *Result {
	res := &Result{
		Flavour:   g.cfg.Flavour,
		Files:     writer.Written(),
		DryRun:    g.cfg.DryRun,
		Durations: make(map[string]Timing),
	}

	for name, metric := range msr.AllMetrics() {
		switch name {
		case model.StartComponent.Name:
		case model.EndComponent.Name:
			res.Total = metric.GetTotalDuration()
		default:
			res.Durations[name] = Timing{
				Avg:  metric.AVGDuration(),
				Max:  metric.MaxDuration(),
				Runs: metric.Count(),
			}
		}
	}

	return res
}

// Components returns the component names of wf in execution order.
func Components(wf *workflow.Workflow) []string {
	names := make([]string, 0, len(wf.Components))
	for _, cd := range wf.Components {
		names = append(names, cd.Name)
	}

	return names
}

// SortedDurations returns the names of res.Durations from the slowest component.
func (res *Result) SortedDurations() []string {
	names := make([]string, 0, len(res.Durations))
	for name := range res.Durations {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if res.Durations[names[i]].Avg != res.Durations[names[j]].Avg {
			return res.Durations[names[i]].Avg > res.Durations[names[j]].Avg
		}
		return names[i] < names[j]
	})

	return names
}
