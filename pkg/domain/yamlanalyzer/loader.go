// Package yamlanalyzer reads a domain model from a YAML document.
package yamlanalyzer

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
)

// Load decodes a domain model. Unknown keys are rejected.
func Load(r io.Reader) (*domain.Model, error) {
	var dto YAMLModel

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "unable to decode domain model")
	}

	return MapModel(dto)
}

// LoadFile decodes the domain model stored at path.
func LoadFile(path string) (*domain.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open domain model %s", path)
	}
	defer f.Close()

	model, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "domain model %s", path)
	}

	return model, nil
}
