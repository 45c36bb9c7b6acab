package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/generator"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine/filewriter"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

func (a *app) newComponentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List the components of the configured flavour in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := a.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			gen, err := generator.New(cfg, log)
			if err != nil {
				return err
			}

			wf, err := gen.Workflow(workflow.NewContext(), filewriter.New(filewriter.WithDryRun(true)))
			if err != nil {
				return err
			}

			for _, name := range generator.Components(wf) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}

func newSlotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the slots shared by the generation components",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, generator.SlotDomainModel)
			for _, slot := range eventengine.Slots() {
				fmt.Fprintln(out, slot)
			}
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cmd.Root().Name(), Version)
		},
	}
}
