package yamlanalyzer

// YAMLModel is the document layout read by Load.
type YAMLModel struct {
	Aggregates   []YAMLAggregate   `yaml:"aggregates"`
	ValueObjects []YAMLValueObject `yaml:"value_objects"`
}

type YAMLAggregate struct {
	Name       string         `yaml:"name"`
	Identifier string         `yaml:"identifier"`
	Properties []YAMLProperty `yaml:"properties"`
	Commands   []YAMLCommand  `yaml:"commands"`
	Events     []YAMLEvent    `yaml:"events"`
}

type YAMLCommand struct {
	Name       string         `yaml:"name"`
	Initial    bool           `yaml:"initial"`
	Properties []YAMLProperty `yaml:"properties"`
	Events     []string       `yaml:"events"`
}

type YAMLEvent struct {
	Name       string         `yaml:"name"`
	Properties []YAMLProperty `yaml:"properties"`
}

type YAMLValueObject struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Aggregate  string         `yaml:"aggregate"`
	Properties []YAMLProperty `yaml:"properties"`
}

type YAMLProperty struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable"`
}
