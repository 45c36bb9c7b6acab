// Package php renders and edits PHP classes.
//
// The printer works on the text it renders itself: one class per file, PSR-12 layout,
// four spaces of indentation. Edits locate the class body by its braces and insert members
// next to the members of the same kind.
package php

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/pkg/eventengine"
)

var (
	ErrNoClass  = errors.New("no class found")
	ErrNoMethod = errors.New("method not found")
)

const indent = "    "

const classTemplate = `<?php

declare(strict_types=1);
{{if .Namespace}}
namespace {{.Namespace}};
{{end}}{{if .Uses}}
{{range .Uses}}use {{.}};
{{end}}{{end}}
{{if .Final}}final {{end}}class {{.Name}}{{if .Extends}} extends {{.Extends}}{{end}}{{if .Implements}} implements {{join .Implements ", "}}{{end}}
{
{{range .Traits}}    use {{.}};
{{end}}}
`

var (
	classLine    = regexp.MustCompile(`^(final |abstract )?class \w+`)
	traitLine    = regexp.MustCompile(`^    use [\w\\]+;$`)
	constLine    = regexp.MustCompile(`^    ((public|protected|private) )?const \w+ = .*;$`)
	propertyLine = regexp.MustCompile(`^    (public|protected|private)( static)?( \??[\w\\]+)? \$\w+( = .*)?;$`)
	identifier   = regexp.MustCompile(`^[A-Za-z_\\][\w\\]*$`)
)

// Printer is the default eventengine.Printer.
type Printer struct {
	class *template.Template
}

var _ eventengine.Printer = (*Printer)(nil)

func NewPrinter() *Printer {
	return &Printer{
		class: template.Must(template.New("class").Funcs(template.FuncMap{
			"join": strings.Join,
		}).Parse(classTemplate)),
	}
}

func (p *Printer) Class(spec eventengine.ClassSpec) (string, error) {
	if !identifier.MatchString(spec.Name) {
		return "", errors.Errorf("invalid class name %q", spec.Name)
	}

	uses := slices.Clone(spec.Uses)
	slices.Sort(uses)
	spec.Uses = slices.Compact(uses)
	spec.Namespace = strings.Trim(spec.Namespace, `\`)

	var sb strings.Builder
	err := p.class.Execute(&sb, spec)
	if err != nil {
		return "", errors.Wrapf(err, "unable to render class %s", spec.Name)
	}

	return sb.String(), nil
}

func (p *Printer) AddUse(code, fqcn string) (string, error) {
	fqcn = strings.TrimPrefix(fqcn, `\`)
	src, err := parse(code)
	if err != nil {
		return "", err
	}

	statement := "use " + fqcn + ";"
	at, last := -1, -1
	for i := 0; i < src.class; i++ {
		line := src.lines[i]
		if !strings.HasPrefix(line, "use ") {
			continue
		}
		if line == statement {
			return code, nil
		}
		if at < 0 && line > statement {
			at = i
		}
		last = i
	}

	switch {
	case at >= 0:
		src.insert(at, statement)
	case last >= 0:
		src.insert(last+1, statement)
	default:
		src.insert(src.header()+1, "", statement)
	}

	return src.String(), nil
}

func (p *Printer) AddImplements(code, iface string) (string, error) {
	src, err := parse(code)
	if err != nil {
		return "", err
	}

	line, brace := strings.TrimRight(src.lines[src.class], " "), ""
	if src.open == src.class {
		line, brace = strings.TrimRight(strings.TrimSuffix(line, "{"), " "), " {"
	}
	before, list, found := strings.Cut(line, " implements ")
	if !found {
		src.lines[src.class] = line + " implements " + iface + brace
		return src.String(), nil
	}

	ifaces := strings.Split(list, ", ")
	if slices.Contains(ifaces, iface) {
		return code, nil
	}
	src.lines[src.class] = before + " implements " + strings.Join(append(ifaces, iface), ", ") + brace

	return src.String(), nil
}

func (p *Printer) AddConstant(code string, constant eventengine.Constant) (string, error) {
	src, err := parse(code)
	if err != nil {
		return "", err
	}

	exists := regexp.MustCompile(`^    ((public|protected|private) )?const ` + regexp.QuoteMeta(constant.Name) + ` = `)
	if src.find(exists.MatchString) >= 0 {
		return code, nil
	}

	line := indent
	if constant.Visibility != "" {
		line += constant.Visibility + " "
	}
	line += fmt.Sprintf("const %s = %s;", constant.Name, constant.Value)

	src.insertMember(src.after(traitLine, constLine), line)

	return src.String(), nil
}

func (p *Printer) AddProperty(code string, property eventengine.Property) (string, error) {
	src, err := parse(code)
	if err != nil {
		return "", err
	}

	name := "$" + property.Name
	if src.find(func(line string) bool {
		return propertyLine.MatchString(line) && (strings.HasSuffix(line, name+";") || strings.Contains(line, name+" = "))
	}) >= 0 {
		return code, nil
	}

	line := indent + visibility(property.Visibility, "private")
	if property.Type != "" {
		line += " " + nullable(property.Type, property.Nullable)
	}
	line += " " + name + ";"

	src.insertMember(src.after(traitLine, constLine, propertyLine), line)

	return src.String(), nil
}

func (p *Printer) AddMethod(code string, method eventengine.Method) (string, error) {
	if p.HasMethod(code, method.Name) {
		return code, nil
	}

	src, err := parse(code)
	if err != nil {
		return "", err
	}
	src.insertMember(src.close, renderMethod(method)...)

	return src.String(), nil
}

func (p *Printer) HasMethod(code, method string) bool {
	needle := "function " + method + "("
	for _, line := range strings.Split(code, "\n") {
		if strings.HasPrefix(line, indent) && strings.Contains(line, needle) {
			return true
		}
	}

	return false
}

func (p *Printer) AppendToMethod(code, method string, statements ...string) (string, error) {
	src, err := parse(code)
	if err != nil {
		return "", err
	}

	needle := "function " + method + "("
	start := src.find(func(line string) bool {
		return strings.HasPrefix(line, indent) && strings.Contains(line, needle)
	})
	if start < 0 {
		return "", errors.Wrap(ErrNoMethod, method)
	}

	end := -1
	depth := 0
	var scanner braceScanner
	for i := start; i < src.close; i++ {
		depth += scanner.depth(src.lines[i])
		if depth == 0 && strings.TrimSpace(src.lines[i]) == "}" {
			end = i
			break
		}
	}
	if end < 0 {
		return "", errors.Wrapf(ErrNoMethod, "%s has no body", method)
	}

	var block []string
	if !opens(src.lines[end-1]) {
		block = append(block, "")
	}
	for _, statement := range statements {
		for _, line := range strings.Split(statement, "\n") {
			block = append(block, indented(2, line))
		}
	}
	src.insert(end, block...)

	return src.String(), nil
}

func (p *Printer) Schema(schema map[string]any) (string, error) {
	data, err := json.MarshalIndent(schema, "", indent)
	if err != nil {
		return "", errors.Wrap(err, "unable to render schema")
	}

	return string(data) + "\n", nil
}

func renderMethod(method eventengine.Method) []string {
	var lines []string
	if method.Doc != "" {
		lines = append(lines, indent+"/**")
		for _, line := range strings.Split(method.Doc, "\n") {
			lines = append(lines, strings.TrimRight(indent+" * "+line, " "))
		}
		lines = append(lines, indent+" */")
	}

	params := make([]string, len(method.Params))
	for i, param := range method.Params {
		params[i] = "$" + param.Name
		if param.Type != "" {
			params[i] = nullable(param.Type, param.Nullable) + " " + params[i]
		}
	}

	signature := indent + visibility(method.Visibility, "public")
	if method.Static {
		signature += " static"
	}
	signature += " function " + method.Name + "(" + strings.Join(params, ", ") + ")"
	if method.ReturnType != "" {
		signature += ": " + method.ReturnType
	}

	lines = append(lines, signature, indent+"{")
	for _, line := range method.Body {
		lines = append(lines, indented(2, line))
	}

	return append(lines, indent+"}")
}

func visibility(v, fallback string) string {
	if v == "" {
		return fallback
	}

	return v
}

func nullable(typ string, null bool) string {
	if null && !strings.HasPrefix(typ, "?") {
		return "?" + typ
	}

	return typ
}

func indented(level int, line string) string {
	if line == "" {
		return ""
	}

	return strings.Repeat(indent, level) + line
}
