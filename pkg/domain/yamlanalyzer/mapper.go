package yamlanalyzer

import (
	"unicode"
	"unicode/utf8"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/domain"
)

const defaultType = "string"

// MapModel converts a decoded document into a validated domain model. Missing
// identifiers default to the lower camel aggregate name suffixed with Id, missing
// property types to string.
func MapModel(dto YAMLModel) (*domain.Model, error) {
	aggregates := make([]domain.Aggregate, 0, len(dto.Aggregates))
	for _, a := range dto.Aggregates {
		identifier := a.Identifier
		if identifier == "" && a.Name != "" {
			identifier = lowerFirst(a.Name) + "Id"
		}

		aggregate := domain.Aggregate{
			Name:       a.Name,
			Identifier: identifier,
			Properties: mapProperties(a.Properties),
		}
		for _, c := range a.Commands {
			aggregate.Commands = append(aggregate.Commands, domain.Command{
				Name:       c.Name,
				Initial:    c.Initial,
				Properties: mapProperties(c.Properties),
				Events:     c.Events,
			})
		}
		for _, e := range a.Events {
			aggregate.Events = append(aggregate.Events, domain.Event{
				Name:       e.Name,
				Properties: mapProperties(e.Properties),
			})
		}
		aggregates = append(aggregates, aggregate)
	}

	valueObjects := make([]domain.ValueObject, 0, len(dto.ValueObjects))
	for _, vo := range dto.ValueObjects {
		valueObjects = append(valueObjects, domain.ValueObject{
			Name:       vo.Name,
			Type:       orDefault(vo.Type),
			Aggregate:  vo.Aggregate,
			Properties: mapProperties(vo.Properties),
		})
	}

	return domain.NewModel(aggregates, valueObjects)
}

func mapProperties(in []YAMLProperty) []domain.Property {
	if len(in) == 0 {
		return nil
	}

	out := make([]domain.Property, len(in))
	for i, p := range in {
		out[i] = domain.Property{Name: p.Name, Type: orDefault(p.Type), Nullable: p.Nullable}
	}

	return out
}

func orDefault(typ string) string {
	if typ == "" {
		return defaultType
	}

	return typ
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
