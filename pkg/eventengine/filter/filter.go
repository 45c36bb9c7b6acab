// Package filter holds the default naming filters of the generators.
package filter

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
)

// Defaults returns the default filters, mapping directories below rootDir to namespaces
// below rootNamespace.
func Defaults(rootDir, rootNamespace string) eventengine.Filters {
	return eventengine.Filters{
		ConstName:            ConstName,
		ConstValue:           ConstValue,
		ClassName:            ClassName,
		MethodName:           MethodName,
		DirectoryToNamespace: DirectoryToNamespace(rootDir, rootNamespace),
		NamespaceToDirectory: NamespaceToDirectory(rootDir, rootNamespace),
	}
}

// Words splits s on separators and case changes: "placeOrder", "place_order" and
// "Place Order" all give [place Order] like words.
func Words(s string) []string {
	var words []string
	runes := []rune(s)
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}

		prev := runes[i-1]
		switch {
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			// end of an acronym: HTTPServer
			flush(i)
			start = i
		case unicode.IsUpper(r) && unicode.IsDigit(prev):
			flush(i)
			start = i
		}
	}
	flush(len(runes))

	return words
}

// ConstName returns the constant name of s: PlaceOrder gives PLACE_ORDER.
func ConstName(s string) string {
	upper := cases.Upper(language.Und)
	words := Words(s)
	for i, w := range words {
		words[i] = upper.String(w)
	}

	return strings.Join(words, "_")
}

// ConstValue returns the constant value of s: place_order gives PlaceOrder.
func ConstValue(s string) string {
	title := cases.Title(language.Und)
	var sb strings.Builder
	for _, w := range Words(s) {
		sb.WriteString(title.String(w))
	}

	return sb.String()
}

// ClassName returns the class name of s.
func ClassName(s string) string {
	return ConstValue(s)
}

// MethodName returns the lower camel case name of s: PlaceOrder gives placeOrder.
func MethodName(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}

	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)
	var sb strings.Builder
	sb.WriteString(lower.String(words[0]))
	for _, w := range words[1:] {
		sb.WriteString(title.String(w))
	}

	return sb.String()
}

// DirectoryToNamespace returns a filter mapping a directory to its PSR-4 namespace.
// Directories outside rootDir keep all their segments.
func DirectoryToNamespace(rootDir, rootNamespace string) func(string) string {
	root := path.Clean("/" + filepathToSlash(rootDir))
	rootNamespace = strings.Trim(rootNamespace, `\`)

	return func(dir string) string {
		clean := path.Clean("/" + filepathToSlash(dir))

		rel := clean
		parts := []string{}
		if rootNamespace != "" {
			parts = append(parts, rootNamespace)
		}
		if clean == root {
			rel = ""
		} else if strings.HasPrefix(clean, strings.TrimSuffix(root, "/")+"/") {
			rel = strings.TrimPrefix(clean, strings.TrimSuffix(root, "/")+"/")
		}

		for _, segment := range strings.Split(rel, "/") {
			if segment != "" {
				parts = append(parts, segment)
			}
		}

		return strings.Join(parts, `\`)
	}
}

// NamespaceToDirectory is the inverse of DirectoryToNamespace.
func NamespaceToDirectory(rootDir, rootNamespace string) func(string) string {
	root := path.Clean(filepathToSlash(rootDir))
	rootNamespace = strings.Trim(rootNamespace, `\`)

	return func(namespace string) string {
		namespace = strings.Trim(namespace, `\`)
		switch {
		case namespace == rootNamespace:
			namespace = ""
		case rootNamespace != "" && strings.HasPrefix(namespace, rootNamespace+`\`):
			namespace = strings.TrimPrefix(namespace, rootNamespace+`\`)
		}

		segments := append([]string{root}, strings.Split(namespace, `\`)...)

		return path.Join(segments...)
	}
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
