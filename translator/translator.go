// Package translator maps symbols to the display names used in generated
// documentation.
//
// A Translator is a naming strategy. NameBased follows accessor conventions
// (getFoo becomes "foo") and JSONTag follows Go encoding/json struct tags.
// Additional conventions are additional implementations.
package translator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/broady/swaggerdoc/symbol"
)

// Name is a translated name that may be missing.
// The zero value is missing.
type Name struct {
	value   string
	present bool
}

// Present returns a present name. An empty string yields a missing name.
func Present(s string) Name {
	if s == "" {
		return Name{}
	}
	return Name{value: s, present: true}
}

// Missing returns a missing name.
func Missing() Name { return Name{} }

// Value returns the name, or "" when missing.
func (n Name) Value() string { return n.value }

// OK reports whether the name is present.
func (n Name) OK() bool { return n.present }

func (n Name) String() string {
	if !n.present {
		return "<missing>"
	}
	return n.value
}

// Translator is a naming strategy for types, fields and methods.
// Implementations must be safe for concurrent use.
type Translator interface {
	// TypeName returns the canonical display name of t.
	TypeName(t symbol.Type) Name

	// FieldName returns the property name derived from a field.
	FieldName(f *symbol.Field) Name

	// MethodName returns the property name derived from a method, or a
	// missing name when the method does not describe a property.
	MethodName(m *symbol.Method) Name
}

var registry = map[string]func() Translator{
	"namebased": func() Translator { return NameBased{} },
	"json":      func() Translator { return JSONTag{} },
}

// ByName returns the translator registered under name.
func ByName(name string) (Translator, error) {
	newFn, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown translator %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return newFn(), nil
}

// Names returns the registered translator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// containerName renders a parameterized type as "Simple[A, B]" using the
// simple name of each argument.
func containerName(t symbol.Type) string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.SimpleName()
	}
	return t.SimpleName() + "[" + strings.Join(args, ", ") + "]"
}

func isParameterizedClass(t symbol.Type) bool {
	return (t.Kind == symbol.KindClass || t.Kind == symbol.KindContainer) && t.Parameterized()
}
