package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/generator"
)

func (a *app) newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the PHP code of the domain model",
		Example: `  eecodegen generate --model shop.yaml
  eecodegen generate --flavour functional --dry-run
  eecodegen generate --write-policy detect-conflict --dot workflow.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := a.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			gen, err := generator.New(cfg, log, generator.WithFs(a.fs))
			if err != nil {
				return err
			}

			res, err := gen.Run()
			if err != nil {
				log.Error("generation failed", zap.Error(err))
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range res.Files {
				fmt.Fprintln(out, path)
			}

			verb := "generated"
			if res.DryRun {
				verb = "would generate"
			}
			fmt.Fprintf(out, "%s %d files (%s) in %s\n", verb, len(res.Files), res.Flavour, res.Total)

			for _, name := range res.SortedDurations() {
				timing := res.Durations[name]
				log.Debug("component duration",
					zap.String("component", name),
					zap.Duration("avg", timing.Avg),
					zap.Duration("max", timing.Max),
				)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringP("model", "m", "model.yaml", "YAML domain model")
	flags.Bool("dry-run", false, "generate without writing files")
	flags.String("write-policy", "overwrite", "slot write policy: overwrite or detect-conflict")
	flags.Bool("aggregate-folder", false, "put the classes of each aggregate in their own folder")
	flags.Int("concurrency", 4, "number of files written concurrently")
	flags.String("dot", "", "write the workflow graph in DOT language to this file")

	mustBind(a.v, "model", flags.Lookup("model"))
	mustBind(a.v, "dry_run", flags.Lookup("dry-run"))
	mustBind(a.v, "write_policy", flags.Lookup("write-policy"))
	mustBind(a.v, "aggregate_folder", flags.Lookup("aggregate-folder"))
	mustBind(a.v, "concurrency", flags.Lookup("concurrency"))
	mustBind(a.v, "dot", flags.Lookup("dot"))

	return cmd
}
