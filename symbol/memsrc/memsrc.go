// Package memsrc provides an in-memory symbol source.
//
// Classes can be built in Go code or loaded from a YAML description
// (see Load). Type expressions use a Java-like syntax:
//
//	java.util.List<com.acme.User>
//	java.util.Map<java.lang.String, T>
//	int[]
package memsrc

import (
	"fmt"
	"strings"

	"github.com/broady/swaggerdoc/symbol"
)

// Source is an immutable in-memory symbol.Source.
type Source struct {
	classes []*symbol.Class
	byName  map[string]*symbol.Class
}

var _ symbol.Source = (*Source)(nil)

// New indexes classes by qualified name and links method owners.
// A later class with the same name replaces an earlier one in lookups.
func New(classes ...*symbol.Class) *Source {
	s := &Source{byName: make(map[string]*symbol.Class, len(classes))}
	for _, c := range classes {
		symbol.Link(c)
		s.classes = append(s.classes, c)
		s.byName[c.Name] = c
	}
	return s
}

// Classes returns every class in insertion order.
func (s *Source) Classes() []*symbol.Class { return s.classes }

// Lookup returns the class named qualifiedName, or nil.
func (s *Source) Lookup(qualifiedName string) *symbol.Class {
	return s.byName[qualifiedName]
}

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true, "void": true,
}

// ParseType parses a type expression. Names listed in typeParams are read as
// type variables.
func ParseType(expr string, typeParams ...string) (symbol.Type, error) {
	p := &typeParser{src: expr, vars: typeParams}
	t, err := p.parse()
	if err != nil {
		return symbol.Type{}, fmt.Errorf("parse type %q: %w", expr, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return symbol.Type{}, fmt.Errorf("parse type %q: unexpected %q at offset %d", expr, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// MustType is like ParseType but panics on error. For tests and fixtures.
func MustType(expr string, typeParams ...string) symbol.Type {
	t, err := ParseType(expr, typeParams...)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src  string
	pos  int
	vars []string
}

func (p *typeParser) parse() (symbol.Type, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isNameByte(p.src[p.pos]) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return symbol.Type{}, fmt.Errorf("expected type name at offset %d", start)
	}

	var t symbol.Type
	switch {
	case primitives[name]:
		t = symbol.Primitive(name)
	case name == symbol.AnyName:
		t = symbol.Any()
	case p.isVar(name):
		t = symbol.TypeVar(name)
	default:
		t = symbol.Named(name)
	}

	p.skipSpace()
	if p.peek('<') {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return symbol.Type{}, err
			}
			t.Args = append(t.Args, arg)
			p.skipSpace()
			if p.peek(',') {
				p.pos++
				continue
			}
			if p.peek('>') {
				p.pos++
				break
			}
			return symbol.Type{}, fmt.Errorf("expected ',' or '>' at offset %d", p.pos)
		}
		if t.Kind != symbol.KindClass {
			return symbol.Type{}, fmt.Errorf("%s cannot take type arguments", name)
		}
	}

	for {
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "[]") {
			break
		}
		p.pos += 2
		t = symbol.Container("Array", t)
	}
	return t, nil
}

func (p *typeParser) isVar(name string) bool {
	for _, v := range p.vars {
		if v == name {
			return true
		}
	}
	return false
}

func (p *typeParser) peek(b byte) bool { return p.pos < len(p.src) && p.src[p.pos] == b }

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func isNameByte(b byte) bool {
	return b == '.' || b == '_' || b == '$' || b == '/' ||
		'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9'
}
