// Package symbol defines the read-only view of annotated source declarations
// that the extractors consume.
//
// A Source exposes classes with their methods, fields, parameters,
// annotations and documentation. Backends (Go source via go/packages, an
// in-memory graph, a YAML IDL) build these values once; extractors only read
// them and may do so from several goroutines at once.
package symbol

import (
	"fmt"
	"strings"
)

// Source is the symbol graph consumed by the extractors.
// Implementations must be safe for concurrent reads.
type Source interface {
	// Classes returns every class of the source in declaration order.
	Classes() []*Class

	// Lookup resolves a qualified name to its declaration.
	// It returns nil when the name has no composite definition.
	Lookup(qualifiedName string) *Class
}

// Position is a source location.
type Position struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the position is empty.
func (p Position) IsZero() bool {
	return p.File == "" && p.Line == 0 && p.Column == 0
}

func (p Position) String() string {
	if p.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Annotation is a marker attached to a declaration, with an optional value.
// Go sources express them as //api: directives and struct tags.
type Annotation struct {
	Name  string
	Value string
}

// Annotations is an ordered annotation list.
type Annotations []Annotation

// Get returns the first annotation matching name. A qualified annotation
// ("javax.ws.rs.GET") matches its simple name ("GET") and vice versa.
func (as Annotations) Get(name string) (Annotation, bool) {
	for _, a := range as {
		if a.Name == name || SimpleName(a.Name) == SimpleName(name) {
			return a, true
		}
	}
	return Annotation{}, false
}

// Has reports whether an annotation matching name is present.
func (as Annotations) Has(name string) bool {
	_, ok := as.Get(name)
	return ok
}

// Class is a named composite declaration: a class, interface, struct or enum.
type Class struct {
	// Name is the fully-qualified name.
	Name string

	Doc         Doc
	Annotations Annotations

	// TypeParams lists declared type variables in order.
	TypeParams []string

	// Superclass is the parent declaration with its type arguments, or nil.
	Superclass *Type

	// Interfaces lists implemented interfaces in declaration order,
	// each with the type arguments bound at this implementation.
	Interfaces []Type

	Methods []*Method
	Fields  []*Field

	// Enum marks enumerations; EnumConstants lists constants in order.
	Enum          bool
	EnumConstants []string

	Pos Position
}

// SimpleName returns the unqualified class name.
func (c *Class) SimpleName() string { return SimpleName(c.Name) }

// Type returns the class as a type expression, parameterized by its own
// type variables.
func (c *Class) Type() Type {
	t := Named(c.Name)
	for _, p := range c.TypeParams {
		t.Args = append(t.Args, TypeVar(p))
	}
	return t
}

// Method is a method declared by a class.
type Method struct {
	Name        string
	Owner       *Class
	Params      []*Param
	Returns     Type
	Annotations Annotations
	Doc         Doc
	Pos         Position
}

// Signature renders the parameter types, e.g. "(java.lang.String, int)".
func (m *Method) Signature() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Type.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (m *Method) String() string {
	if m.Owner == nil {
		return m.Name + m.Signature()
	}
	return m.Owner.Name + "." + m.Name + m.Signature()
}

// Field is a field declared by a class.
type Field struct {
	Name        string
	Type        Type
	Annotations Annotations
	Doc         Doc
}

// Param is a method parameter.
type Param struct {
	Name        string
	Type        Type
	Annotations Annotations
}

// Link sets the Owner of every method of c. Backends call it after building
// a class.
func Link(c *Class) *Class {
	for _, m := range c.Methods {
		m.Owner = c
	}
	return c
}
