package translator

import (
	"strings"

	"github.com/broady/swaggerdoc/symbol"
)

// JSONTag names properties the way encoding/json serializes Go structs.
//
// Field names come from the `json` struct tag (surfaced as a "json"
// annotation), falling back to the declared name. A tag of "-" hides the
// field. Methods never describe properties. Go type names are shortened from
// "github.com/acme/api.User" to "api.User".
type JSONTag struct{}

var _ Translator = JSONTag{}

// TypeName implements Translator.
func (JSONTag) TypeName(t symbol.Type) Name {
	if isParameterizedClass(t) {
		return Present(containerName(t))
	}
	if n, ok := wellKnown[t.Name]; ok {
		return Present(n)
	}
	if i := strings.LastIndex(t.Name, "/"); i >= 0 {
		return Present(t.Name[i+1:])
	}
	return Present(t.Name)
}

// FieldName implements Translator.
func (JSONTag) FieldName(f *symbol.Field) Name {
	a, ok := f.Annotations.Get("json")
	if !ok {
		return Present(f.Name)
	}
	name, _, _ := strings.Cut(a.Value, ",")
	switch name {
	case "-":
		return Missing()
	case "":
		return Present(f.Name)
	}
	return Present(name)
}

// MethodName implements Translator.
func (JSONTag) MethodName(*symbol.Method) Name { return Missing() }
