// Package config loads the settings of a generation run from a file, the environment and
// command line flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/workflow"
)

const (
	// AppName is the base name of the configuration file.
	AppName = "eecodegen"
	// EnvPrefix is the prefix of the environment variables, e.g. EECODEGEN_LOG_DEBUG.
	EnvPrefix = "EECODEGEN"

	FlavourPrototype  = "prototype"
	FlavourFunctional = "functional"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of a generation run.
type Config struct {
	// Flavour is prototype or functional.
	Flavour string `mapstructure:"flavour"`
	// Model is the YAML domain model file.
	Model           string `mapstructure:"model"`
	DryRun          bool   `mapstructure:"dry_run"`
	WritePolicy     string `mapstructure:"write_policy"`
	AggregateFolder bool   `mapstructure:"aggregate_folder"`
	Concurrency     int    `mapstructure:"concurrency"`
	// Dot is the file receiving the DOT rendering of the workflow, none when empty.
	Dot string `mapstructure:"dot"`

	Source struct {
		Dir       string `mapstructure:"dir"`
		Namespace string `mapstructure:"namespace"`
	} `mapstructure:"source"`

	Prototype struct {
		DomainModelPath    string `mapstructure:"domain_model_path"`
		APIDescriptionPath string `mapstructure:"api_description_path"`
	} `mapstructure:"prototype"`

	Functional struct {
		CommandPath     string `mapstructure:"command_path"`
		EventPath       string `mapstructure:"event_path"`
		ValueObjectPath string `mapstructure:"value_object_path"`
	} `mapstructure:"functional"`

	Log struct {
		Debug  bool   `mapstructure:"debug"`
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"log"`
}

// NewViper returns a viper instance with defaults and environment lookup set.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("flavour", FlavourPrototype)
	v.SetDefault("model", "model.yaml")
	v.SetDefault("dry_run", false)
	v.SetDefault("write_policy", workflow.Overwrite.String())
	v.SetDefault("aggregate_folder", false)
	v.SetDefault("concurrency", 4)
	v.SetDefault("dot", "")

	v.SetDefault("source.dir", "src")
	v.SetDefault("source.namespace", "App")

	v.SetDefault("prototype.domain_model_path", "src/Domain")
	v.SetDefault("prototype.api_description_path", "src/Api")

	v.SetDefault("functional.command_path", "src/Domain/Command")
	v.SetDefault("functional.event_path", "src/Domain/Event")
	v.SetDefault("functional.value_object_path", "src/Domain/ValueObject")

	v.SetDefault("log.debug", false)
	v.SetDefault("log.format", "human")
	v.SetDefault("log.file", "")
}

// Load reads cfgFile, or eecodegen.yaml from the working directory when cfgFile is empty,
// and returns the validated configuration. A missing default file is not an error.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "unable to read config file")
		}
	}

	var cfg Config
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse config")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Flavour {
	case FlavourPrototype, FlavourFunctional:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown flavour %q", c.Flavour)
	}

	if c.Model == "" {
		return errors.Wrap(ErrInvalidConfig, "model must be set")
	}

	_, err := workflow.ParseWritePolicy(c.WritePolicy)
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	if c.Concurrency < 1 {
		return errors.Wrapf(ErrInvalidConfig, "concurrency must be positive, got %d", c.Concurrency)
	}

	switch c.Log.Format {
	case "human", "json":
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown log format %q", c.Log.Format)
	}

	return nil
}
