package translator

import (
	"strings"
	"testing"

	"github.com/broady/swaggerdoc/symbol"
)

func TestName(t *testing.T) {
	if Missing().OK() || Present("").OK() {
		t.Error("missing and empty names should not be OK")
	}
	if got := Missing().String(); got != "<missing>" {
		t.Errorf("Missing().String() = %q", got)
	}

	n := Present("user")
	if !n.OK() || n.Value() != "user" || n.String() != "user" {
		t.Errorf("Present(user) = %+v", n)
	}
}

func TestNameBased_TypeName(t *testing.T) {
	tests := []struct {
		name string
		typ  symbol.Type
		want string
	}{
		{"boxed long", symbol.Named("java.lang.Long"), "long"},
		{"java string", symbol.Named("java.lang.String"), "string"},
		{"java primitive", symbol.Primitive("int"), "int"},
		{"go int64", symbol.Primitive("int64"), "long"},
		{"go time", symbol.Named("time.Time"), "Date"},
		{"go duration", symbol.Named("time.Duration"), "long"},
		{"unknown class", symbol.Named("com.acme.User"), "com.acme.User"},
		{"list of class", symbol.Named("java.util.List", symbol.Named("com.acme.User")), "List[User]"},
		{
			"map",
			symbol.Named("java.util.Map", symbol.Named("java.lang.String"), symbol.Named("com.acme.User")),
			"Map[String, User]",
		},
		{"go slice", symbol.Container("List", symbol.Named("github.com/acme/api.User")), "List[User]"},
		{"type var", symbol.TypeVar("T"), "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NameBased{}.TypeName(tt.typ)
			if !got.OK() {
				t.Fatalf("TypeName(%v) is missing", tt.typ)
			}
			if got.Value() != tt.want {
				t.Errorf("TypeName(%v) = %q, want %q", tt.typ, got.Value(), tt.want)
			}
		})
	}
}

func TestNameBased_MethodName(t *testing.T) {
	tests := map[string]string{
		"getName":     "name",
		"getUserName": "userName",
		"GetID":       "iD",
		"getX":        "x",
		"get":         "",
		"isActive":    "",
		"delete":      "",
		"getter":      "ter",
	}
	for method, want := range tests {
		got := NameBased{}.MethodName(&symbol.Method{Name: method})
		if got.OK() != (want != "") || got.Value() != want {
			t.Errorf("MethodName(%s) = %v, want %q", method, got, want)
		}
	}
}

func TestNameBased_FieldName(t *testing.T) {
	if got := (NameBased{}).FieldName(&symbol.Field{Name: "email"}); got != Present("email") {
		t.Errorf("FieldName = %v, want email", got)
	}
}

func TestJSONTag(t *testing.T) {
	tr := JSONTag{}

	field := func(name, tag string) *symbol.Field {
		f := &symbol.Field{Name: name}
		if tag != "" {
			f.Annotations = symbol.Annotations{{Name: "json", Value: tag}}
		}
		return f
	}
	fields := []struct {
		name, tag, want string
	}{
		{"UserID", "user_id,omitempty", "user_id"},
		{"Email", "", "Email"},
		{"Email", ",omitempty", "Email"},
	}
	for _, tt := range fields {
		if got := tr.FieldName(field(tt.name, tt.tag)); got.Value() != tt.want {
			t.Errorf("FieldName(%s %q) = %v, want %q", tt.name, tt.tag, got, tt.want)
		}
	}
	if tr.FieldName(field("Secret", "-")).OK() {
		t.Error(`json:"-" fields should be missing`)
	}
	if tr.MethodName(&symbol.Method{Name: "GetName"}).OK() {
		t.Error("methods never name properties")
	}

	types := []struct {
		typ  symbol.Type
		want string
	}{
		{symbol.Named("github.com/acme/api.User"), "api.User"},
		{symbol.Primitive("int64"), "long"},
		{symbol.Container("List", symbol.Named("github.com/acme/api.User")), "List[User]"},
	}
	for _, tt := range types {
		if got := tr.TypeName(tt.typ).Value(); got != tt.want {
			t.Errorf("TypeName(%v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestByName(t *testing.T) {
	tr, err := ByName("namebased")
	if err != nil {
		t.Fatalf("ByName(namebased) failed: %v", err)
	}
	if _, ok := tr.(NameBased); !ok {
		t.Errorf("ByName(namebased) = %T", tr)
	}

	tr, err = ByName("JSON")
	if err != nil {
		t.Fatalf("ByName(JSON) failed: %v", err)
	}
	if _, ok := tr.(JSONTag); !ok {
		t.Errorf("ByName(JSON) = %T", tr)
	}

	_, err = ByName("snake")
	if err == nil || !strings.Contains(err.Error(), "json, namebased") {
		t.Errorf("ByName(snake) err = %v", err)
	}
}
