// Package cli holds the eecodegen commands.
package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/config"
	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/logger"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

type app struct {
	v       *viper.Viper
	fs      afero.Fs
	cfgFile string
}

type Option func(*app)

// WithFs replaces the operating system file system for the config file, the model and
// the generated code.
func WithFs(fs afero.Fs) Option {
	return func(a *app) {
		if fs != nil {
			a.fs = fs
		}
	}
}

// NewRootCommand returns the eecodegen command tree.
func NewRootCommand(options ...Option) *cobra.Command {
	a := &app{
		v:  config.NewViper(),
		fs: afero.NewOsFs(),
	}
	for _, option := range options {
		option(a)
	}
	a.v.SetFs(a.fs)

	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Generate Event Engine PHP code from a domain model",
		Long: `eecodegen reads a YAML domain model of aggregates, commands, events and value
objects and generates the PHP code of an Event Engine application.

The prototype flavour writes the Event Engine descriptions, the JSON schemas of
the messages and the aggregate behaviour and state classes. The functional flavour
writes immutable command, event and value object classes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./eecodegen.yaml)")
	flags.StringP("flavour", "f", "prototype", "code flavour: prototype or functional")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("log-format", "human", "log format: json or human")
	flags.String("log-file", "", "copy the logs to this file")

	mustBind(a.v, "flavour", flags.Lookup("flavour"))
	mustBind(a.v, "log.debug", flags.Lookup("debug"))
	mustBind(a.v, "log.format", flags.Lookup("log-format"))
	mustBind(a.v, "log.file", flags.Lookup("log-file"))

	root.AddCommand(
		a.newGenerateCommand(),
		a.newComponentsCommand(),
		newSlotsCommand(),
		newVersionCommand(),
	)

	return root
}

func (a *app) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Config{
		Debug:  cfg.Log.Debug,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	err := v.BindPFlag(key, flag)
	if err != nil {
		panic(errors.Wrapf(err, "unable to bind flag to %s", key))
	}
}
