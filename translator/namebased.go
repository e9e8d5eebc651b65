package translator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/broady/swaggerdoc/symbol"
)

// wellKnown maps primitive and boxed type names, in Java and Go spelling,
// to their documentation names.
var wellKnown = map[string]string{
	// Java primitives and boxed types.
	"byte":                "byte",
	"boolean":             "boolean",
	"char":                "string",
	"short":               "int",
	"int":                 "int",
	"long":                "long",
	"float":               "float",
	"double":              "double",
	"void":                "void",
	"java.lang.Byte":      "byte",
	"java.lang.Boolean":   "boolean",
	"java.lang.Character": "string",
	"java.lang.Short":     "int",
	"java.lang.Integer":   "int",
	"java.lang.Long":      "long",
	"java.lang.Float":     "float",
	"java.lang.Double":    "double",
	"java.lang.String":    "string",
	"java.util.Date":      "Date",

	// Go builtins.
	"bool":          "boolean",
	"string":        "string",
	"int8":          "byte",
	"int16":         "int",
	"int32":         "int",
	"int64":         "long",
	"uint":          "int",
	"uint8":         "byte",
	"uint16":        "int",
	"uint32":        "int",
	"uint64":        "long",
	"uintptr":       "long",
	"rune":          "int",
	"float32":       "float",
	"float64":       "double",
	"[]byte":        "byte",
	"error":         "string",
	"time.Time":     "Date",
	"time.Duration": "long",
}

// NameBased derives property names from accessor method names.
//
//	TypeName(java.util.List<com.acme.User>) = "List[User]"
//	TypeName(java.lang.Long)                = "long"
//	MethodName(getUserName)                 = "userName"
//	MethodName(delete)                      = missing
type NameBased struct{}

var _ Translator = NameBased{}

// TypeName implements Translator.
func (NameBased) TypeName(t symbol.Type) Name {
	if isParameterizedClass(t) {
		return Present(containerName(t))
	}
	if n, ok := wellKnown[t.Name]; ok {
		return Present(n)
	}
	return Present(t.Name)
}

// FieldName implements Translator.
func (NameBased) FieldName(f *symbol.Field) Name { return Present(f.Name) }

// MethodName implements Translator.
func (NameBased) MethodName(m *symbol.Method) Name {
	return Present(accessorProperty(m.Name))
}

// accessorProperty returns the property described by a getter name, or "".
func accessorProperty(name string) string {
	if len(name) <= 3 || !(strings.HasPrefix(name, "get") || strings.HasPrefix(name, "Get")) {
		return ""
	}
	rest := name[3:]
	r, size := utf8.DecodeRuneInString(rest)
	return string(unicode.ToLower(r)) + rest[size:]
}
