package php

import (
	"regexp"
	"strings"
)

type memberKind int

const (
	otherMember memberKind = iota
	traitMember
	constMember
	propertyMember
)

// source is a rendered class split in lines.
type source struct {
	lines []string
	// class is the index of the class declaration, open and close of its braces.
	class int
	open  int
	close int
}

func parse(code string) (*source, error) {
	src := &source{
		lines: strings.Split(strings.TrimRight(code, "\n"), "\n"),
		class: -1,
		open:  -1,
		close: -1,
	}

	for i, line := range src.lines {
		if src.class < 0 && classLine.MatchString(line) {
			src.class = i
			if opens(line) {
				src.open = i
			}
			continue
		}
		if src.class >= 0 && src.open < 0 && line == "{" {
			src.open = i
		}
		if src.open >= 0 && line == "}" {
			src.close = i
		}
	}

	if src.class < 0 || src.open < 0 || src.close < 0 {
		return nil, ErrNoClass
	}

	return src, nil
}

func (s *source) String() string {
	return strings.Join(s.lines, "\n") + "\n"
}

// header returns the index of the namespace line, or of the declare line without one.
func (s *source) header() int {
	header := 0
	for i := 0; i < s.class; i++ {
		line := s.lines[i]
		if strings.HasPrefix(line, "namespace ") {
			return i
		}
		if strings.HasPrefix(line, "declare(") {
			header = i
		}
	}

	return header
}

// find returns the index of the first class body line matching fn, -1 if none does.
func (s *source) find(fn func(string) bool) int {
	for i := s.open + 1; i < s.close; i++ {
		if fn(s.lines[i]) {
			return i
		}
	}

	return -1
}

// after returns the index following the last body line matching one of patterns, or the
// first body line.
func (s *source) after(patterns ...*regexp.Regexp) int {
	at := s.open + 1
	for i := s.open + 1; i < s.close; i++ {
		for _, pattern := range patterns {
			if pattern.MatchString(s.lines[i]) {
				at = i + 1
				break
			}
		}
	}

	return at
}

func (s *source) insert(at int, lines ...string) {
	s.lines = append(s.lines[:at], append(lines, s.lines[at:]...)...)
	if at <= s.close {
		s.close += len(lines)
	}
	if at <= s.open {
		s.open += len(lines)
	}
	if at <= s.class {
		s.class += len(lines)
	}
}

// insertMember inserts a member at index at, separated by a blank line from members of
// another kind.
func (s *source) insertMember(at int, lines ...string) {
	kind := kindOf(lines[0])
	block := make([]string, 0, len(lines)+2)

	prev := s.lines[at-1]
	if !opens(prev) && prev != "" && (kind == otherMember || kindOf(prev) != kind) {
		block = append(block, "")
	}
	block = append(block, lines...)

	next := s.lines[at]
	if next != "}" && next != "" && (kind == otherMember || kindOf(next) != kind) {
		block = append(block, "")
	}

	s.insert(at, block...)
}

// opens reports whether line ends with an opening brace.
func opens(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " "), "{")
}

// braceScanner counts the braces of PHP lines outside of string literals and comments.
type braceScanner struct {
	// inComment is set while inside a block comment spanning lines.
	inComment bool
}

// depth returns the number of braces line opens minus the number it closes.
func (b *braceScanner) depth(line string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case b.inComment:
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				b.inComment = false
				i++
			}
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '#', c == '/' && i+1 < len(line) && line[i+1] == '/':
			return depth
		case c == '/' && i+1 < len(line) && line[i+1] == '*':
			b.inComment = true
			i++
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}

	return depth
}

func kindOf(line string) memberKind {
	switch {
	case traitLine.MatchString(line):
		return traitMember
	case constLine.MatchString(line):
		return constMember
	case propertyLine.MatchString(line):
		return propertyMember
	default:
		return otherMember
	}
}
