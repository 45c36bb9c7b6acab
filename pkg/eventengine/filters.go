package eventengine

import (
	"github.com/pkg/errors"
)

var (
	ErrMissingFilter  = errors.New("missing filter")
	ErrMissingPrinter = errors.New("missing printer")
)

// Filters are the naming functions applied to domain names and paths.
type Filters struct {
	ConstName            func(string) string
	ConstValue           func(string) string
	ClassName            func(string) string
	MethodName           func(string) string
	DirectoryToNamespace func(string) string
	NamespaceToDirectory func(string) string
}

// Validate returns ErrMissingFilter naming the first unset filter.
func (f Filters) Validate() error {
	filters := []struct {
		fn   func(string) string
		name string
	}{
		{f.ConstName, "const name"},
		{f.ConstValue, "const value"},
		{f.ClassName, "class name"},
		{f.MethodName, "method name"},
		{f.DirectoryToNamespace, "directory to namespace"},
		{f.NamespaceToDirectory, "namespace to directory"},
	}

	for _, filter := range filters {
		if filter.fn == nil {
			return errors.Wrap(ErrMissingFilter, filter.name)
		}
	}

	return nil
}
