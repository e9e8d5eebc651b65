package symbol

import "strings"

// TypeKind identifies the category of a type expression.
type TypeKind int

const (
	KindPrimitive TypeKind = iota // Built-in value type (int, boolean, void, ...)
	KindClass                     // Named declaration, possibly parameterized
	KindContainer                 // Built-in container (slice, array, map) with element Args
	KindTypeVar                   // Generic type variable (T, K, V, ...)
	KindAny                       // Universal base object type
)

// String returns the string representation of the type kind.
func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindClass:
		return "Class"
	case KindContainer:
		return "Container"
	case KindTypeVar:
		return "TypeVar"
	case KindAny:
		return "Any"
	default:
		return "Unknown"
	}
}

// Type is a structural type expression as seen at a use site.
//
// Types are plain values: they never point back into the symbol graph.
// Resolve a class type to its declaration with Source.Lookup(t.Name).
type Type struct {
	// Kind selects how Name and Args are interpreted.
	Kind TypeKind

	// Name is the erased, fully-qualified name.
	// Examples: "java.util.List", "github.com/x/api.User", "int", "T".
	// Containers use their display name ("List", "Map").
	Name string

	// Args holds type arguments. Non-empty means the type is parameterized.
	Args []Type
}

// Primitive returns a primitive type.
func Primitive(name string) Type { return Type{Kind: KindPrimitive, Name: name} }

// Named returns a class type with optional type arguments.
func Named(name string, args ...Type) Type { return Type{Kind: KindClass, Name: name, Args: args} }

// Container returns a built-in container type.
func Container(name string, args ...Type) Type {
	return Type{Kind: KindContainer, Name: name, Args: args}
}

// TypeVar returns a type variable reference.
func TypeVar(name string) Type { return Type{Kind: KindTypeVar, Name: name} }

// Any returns the universal base object type.
func Any() Type { return Type{Kind: KindAny, Name: AnyName} }

// Void is the return type of methods that produce nothing.
var Void = Primitive("void")

// AnyName is the qualified name reported for the universal base type.
const AnyName = "java.lang.Object"

// IsZero reports whether t is the zero Type.
func (t Type) IsZero() bool {
	return t.Kind == KindPrimitive && t.Name == "" && len(t.Args) == 0
}

// Parameterized reports whether t carries type arguments.
func (t Type) Parameterized() bool { return len(t.Args) > 0 }

// SimpleName returns the unqualified name: the part after the last '/'
// and then after the last '.'.
func (t Type) SimpleName() string { return SimpleName(t.Name) }

// String renders t with its type arguments, e.g. "java.util.Map<K, V>".
func (t Type) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	var sb strings.Builder
	sb.WriteString(t.Name)
	sb.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte('>')
	return sb.String()
}

// SimpleName strips package qualification from a qualified name.
func SimpleName(qualified string) string {
	name := qualified
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Bindings maps type variable names to the concrete types bound at a use site.
type Bindings map[string]Type

// Bind pairs declared type parameters with the arguments of a parameterized use.
// Extra parameters or arguments on either side are ignored.
func Bind(params []string, args []Type) Bindings {
	n := min(len(params), len(args))
	if n == 0 {
		return nil
	}
	b := make(Bindings, n)
	for i := 0; i < n; i++ {
		b[params[i]] = args[i]
	}
	return b
}

// Identical reports whether decl, after substituting its type variables with
// bindings, is structurally identical to use. Substitution is applied once:
// bound types are compared as-is and are not substituted again.
func Identical(decl, use Type, bindings Bindings) bool {
	if decl.Kind == KindTypeVar {
		if bound, ok := bindings[decl.Name]; ok {
			return Identical(bound, use, nil)
		}
	}
	if decl.Kind != use.Kind || decl.Name != use.Name || len(decl.Args) != len(use.Args) {
		return false
	}
	for i := range decl.Args {
		if !Identical(decl.Args[i], use.Args[i], bindings) {
			return false
		}
	}
	return true
}

// SameSignature reports whether two parameter lists match position by position
// under bindings applied to decl.
func SameSignature(decl, use []*Param, bindings Bindings) bool {
	if len(decl) != len(use) {
		return false
	}
	for i := range decl {
		if !Identical(decl[i].Type, use[i].Type, bindings) {
			return false
		}
	}
	return true
}

// Substitute replaces bound type variables in t. Like Identical, it applies
// bindings once and never re-substitutes inside a bound type.
func Substitute(t Type, bindings Bindings) Type {
	if len(bindings) == 0 {
		return t
	}
	if t.Kind == KindTypeVar {
		if bound, ok := bindings[t.Name]; ok {
			return bound
		}
		return t
	}
	if len(t.Args) == 0 {
		return t
	}
	out := Type{Kind: t.Kind, Name: t.Name, Args: make([]Type, len(t.Args))}
	for i, a := range t.Args {
		out.Args[i] = Substitute(a, bindings)
	}
	return out
}
