package gosrc

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"

	swparser "github.com/broady/swaggerdoc/parser"
	"github.com/broady/swaggerdoc/symbol"
	"github.com/broady/swaggerdoc/translator"
)

const (
	shopPkg = "github.com/broady/swaggerdoc/symbol/gosrc/testdata/shop"
	jobsPkg = "github.com/broady/swaggerdoc/symbol/gosrc/testdata/jobs"
)

var (
	testOnce sync.Once
	testSrc  *Source
	testErr  error
)

// loadTestdata loads the testdata packages once per test binary.
func loadTestdata(t *testing.T) *Source {
	t.Helper()
	testOnce.Do(func() {
		testSrc, testErr = Load(context.Background(), Config{Patterns: []string{"./testdata/shop", "./testdata/jobs"}})
	})
	if testErr != nil {
		t.Fatalf("Load failed: %v", testErr)
	}
	return testSrc
}

func lookup(t *testing.T, src *Source, name string) *symbol.Class {
	t.Helper()
	c := src.Lookup(name)
	if c == nil {
		t.Fatalf("class %s not found", name)
	}
	return c
}

func findMethod(t *testing.T, c *symbol.Class, name string) *symbol.Method {
	t.Helper()
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("method %s not found on %s", name, c.Name)
	return nil
}

func TestLoad_ClassesInDeclarationOrder(t *testing.T) {
	src := loadTestdata(t)
	var names []string
	for _, c := range src.Classes() {
		if strings.HasPrefix(c.Name, shopPkg+".") {
			names = append(names, symbol.SimpleName(c.Name))
		}
	}
	want := []string{"Color", "User", "Tag", "Store", "Base", "UserStore"}
	if !slices.Equal(names, want) {
		t.Errorf("classes = %v, want %v", names, want)
	}
}

func TestLoad_Struct(t *testing.T) {
	user := lookup(t, loadTestdata(t), shopPkg+".User")
	if got := user.Doc.FirstSentence; got != "User is a registered user." {
		t.Errorf("FirstSentence = %q", got)
	}
	if user.Pos.IsZero() {
		t.Error("User should have a position")
	}

	var fields []string
	for _, f := range user.Fields {
		fields = append(fields, f.Name)
	}
	// json:"-" and unexported fields are dropped.
	wantFields := []string{"Name", "Age", "Tags", "Labels", "Color", "Priority", "Created"}
	if !slices.Equal(fields, wantFields) {
		t.Fatalf("fields = %v, want %v", fields, wantFields)
	}

	name := user.Fields[0]
	if !reflect.DeepEqual(name.Type, symbol.Primitive("string")) {
		t.Errorf("Name type = %v", name.Type)
	}
	if name.Doc.Text != "Name is the display name." {
		t.Errorf("Name doc = %q", name.Doc.Text)
	}
	wantTags := symbol.Annotations{{Name: "json", Value: "name"}, {Name: "validate", Value: "required"}}
	if !reflect.DeepEqual(name.Annotations, wantTags) {
		t.Errorf("Name annotations = %v, want %v", name.Annotations, wantTags)
	}

	types := []struct {
		field int
		want  symbol.Type
	}{
		{2, symbol.Container("List", symbol.Named(shopPkg+".Tag"))},
		{3, symbol.Container("Map", symbol.Primitive("string"), symbol.Primitive("string"))},
		{4, symbol.Named(shopPkg + ".Color")},
		{5, symbol.Primitive("int")}, // named basic without constants
		{6, symbol.Named("time.Time")},
	}
	for _, tt := range types {
		f := user.Fields[tt.field]
		if !reflect.DeepEqual(f.Type, tt.want) {
			t.Errorf("%s type = %v, want %v", f.Name, f.Type, tt.want)
		}
	}

	if len(user.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(user.Methods))
	}
	get := user.Methods[0]
	if get.Name != "GetDisplayName" {
		t.Errorf("method = %s", get.Name)
	}
	if get.Owner != user {
		t.Error("method owner should be User")
	}
	if got := get.Doc.TagText("return"); got != "the display name" {
		t.Errorf("@return = %q", got)
	}
}

func TestLoad_Enum(t *testing.T) {
	src := loadTestdata(t)
	color := lookup(t, src, shopPkg+".Color")
	if !color.Enum {
		t.Error("Color should be an enum")
	}
	if want := []string{"red", "green", "blue"}; !slices.Equal(color.EnumConstants, want) {
		t.Errorf("EnumConstants = %v, want %v", color.EnumConstants, want)
	}
	if c := src.Lookup(shopPkg + ".Priority"); c != nil {
		t.Errorf("Priority has no constants and should not be a class, got %v", c.Name)
	}
}

func TestLoad_EnumSkipsUnexportedAndAliases(t *testing.T) {
	color := lookup(t, loadTestdata(t), jobsPkg+".Color")
	if want := []string{"red", "blue"}; !slices.Equal(color.EnumConstants, want) {
		t.Errorf("EnumConstants = %v, want %v", color.EnumConstants, want)
	}
}

func TestLoad_DependencyBasicsAreNotEnums(t *testing.T) {
	src := loadTestdata(t)
	job := lookup(t, src, jobsPkg+".Job")

	if want := symbol.Named("time.Duration"); !reflect.DeepEqual(job.Fields[0].Type, want) {
		t.Errorf("Timeout type = %v, want %v", job.Fields[0].Type, want)
	}
	if want := symbol.Primitive("uint32"); !reflect.DeepEqual(job.Fields[1].Type, want) {
		t.Errorf("Mode type = %v, want %v", job.Fields[1].Type, want)
	}
	for _, name := range []string{"time.Duration", "io/fs.FileMode"} {
		if c := src.Lookup(name); c != nil {
			t.Errorf("Lookup(%s) = %v, want nil", name, c.Name)
		}
	}

	p, err := swparser.New(src, swparser.Options{Translator: translator.JSONTag{}})
	if err != nil {
		t.Fatalf("parser.New failed: %v", err)
	}
	model := p.Models(symbol.Named(jobsPkg + ".Job")).Get("jobs.Job")
	if model == nil {
		t.Fatal("Job model not found")
	}

	timeout, ok := model.Property("timeout")
	if !ok {
		t.Fatal("timeout property not found")
	}
	if timeout.Type != "long" || timeout.Enum != nil {
		t.Errorf("timeout = %+v, want type long without enum", timeout)
	}
	if timeout.Description != "Timeout bounds a single run." {
		t.Errorf("timeout description = %q", timeout.Description)
	}
	if mode, _ := model.Property("mode"); mode.Type != "int" || mode.Enum != nil {
		t.Errorf("mode = %+v, want type int without enum", mode)
	}
	if color, _ := model.Property("color"); !slices.Equal(color.Enum, []string{"red", "blue"}) {
		t.Errorf("color = %+v, want enum [red blue]", color)
	}
}

func TestLoad_GenericInterface(t *testing.T) {
	store := lookup(t, loadTestdata(t), shopPkg+".Store")
	if want := []string{"T", "K"}; !slices.Equal(store.TypeParams, want) {
		t.Errorf("TypeParams = %v, want %v", store.TypeParams, want)
	}
	if len(store.Methods) != 1 {
		t.Fatalf("got %d methods, want 1", len(store.Methods))
	}
	get := store.Methods[0]
	if !reflect.DeepEqual(get.Returns, symbol.TypeVar("T")) {
		t.Errorf("Returns = %v", get.Returns)
	}
	if len(get.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(get.Params))
	}
	if !get.Params[0].Annotations.Has("Context") {
		t.Error("context.Context parameter should carry a Context annotation")
	}
	if !reflect.DeepEqual(get.Params[1].Type, symbol.TypeVar("K")) {
		t.Errorf("key type = %v", get.Params[1].Type)
	}
	if got := get.Doc.FirstSentence; got != "Get fetches a value by key." {
		t.Errorf("FirstSentence = %q", got)
	}
	if n := len(get.Doc.TagsNamed("HTTP")); n != 1 {
		t.Errorf("got %d @HTTP tags, want 1", n)
	}
}

func TestLoad_ResourceDirectives(t *testing.T) {
	store := lookup(t, loadTestdata(t), shopPkg+".UserStore")

	path, ok := store.Annotations.Get("Path")
	if !ok || path.Value != "/users" {
		t.Errorf("Path = %v, %v", path, ok)
	}
	if strings.Contains(store.Doc.Text, "api:") {
		t.Errorf("directives leaked into doc: %q", store.Doc.Text)
	}

	if store.Superclass == nil || store.Superclass.Name != shopPkg+".Base" {
		t.Errorf("Superclass = %v", store.Superclass)
	}
	wantIface := symbol.Named(shopPkg+".Store", symbol.Named(shopPkg+".User"), symbol.Primitive("int64"))
	if len(store.Interfaces) != 1 || !reflect.DeepEqual(store.Interfaces[0], wantIface) {
		t.Errorf("Interfaces = %v, want [%v]", store.Interfaces, wantIface)
	}

	get := findMethod(t, store, "Get")
	if !get.Annotations.Has("GET") {
		t.Error("Get should carry GET")
	}
	if !get.Annotations.Has("Override") {
		t.Error("Get implements Store.Get and should carry Override")
	}
	if pp, ok := get.Params[1].Annotations.Get("PathParam"); !ok || pp.Value != "id" {
		t.Errorf("PathParam = %v, %v", pp, ok)
	}
	// Pointer results are dereferenced.
	if !reflect.DeepEqual(get.Returns, symbol.Named(shopPkg+".User")) {
		t.Errorf("Get returns %v", get.Returns)
	}
	if !strings.Contains(get.Doc.Text, symbol.InheritDocMarker) {
		t.Errorf("Get doc = %q", get.Doc.Text)
	}

	if !findMethod(t, store, "Ping").Annotations.Has("Override") {
		t.Error("Ping shadows Base.Ping and should carry Override")
	}

	search := findMethod(t, store, "Search")
	if q, _ := search.Params[1].Annotations.Get("QueryParam"); q.Value != "q" {
		t.Errorf("q QueryParam = %q", q.Value)
	}
	if limit, _ := search.Params[2].Annotations.Get("QueryParam"); limit.Value != "max" {
		t.Errorf("limit QueryParam = %q", limit.Value)
	}
	if want := symbol.Container("List", symbol.Named(shopPkg+".User")); !reflect.DeepEqual(search.Returns, want) {
		t.Errorf("Search returns %v", search.Returns)
	}

	// Error-only results are void.
	if got := findMethod(t, store, "Close").Returns; !reflect.DeepEqual(got, symbol.Void) {
		t.Errorf("Close returns %v", got)
	}
	if findMethod(t, store, "Create").Annotations.Has("Override") {
		t.Error("Create overrides nothing")
	}
}

func TestLookup_Dependencies(t *testing.T) {
	src := loadTestdata(t)

	tm := src.Lookup("time.Time")
	if tm == nil {
		t.Fatal("time.Time not found")
	}
	if tm.Name != "time.Time" {
		t.Errorf("Name = %q", tm.Name)
	}
	if !tm.Doc.IsZero() {
		t.Error("dependency classes carry no docs")
	}
	if src.Lookup("time.Time") != tm {
		t.Error("dependency lookups should be cached")
	}

	for _, name := range []string{"time.NoSuchType", "example.com/unloaded.Type", "int"} {
		if c := src.Lookup(name); c != nil {
			t.Errorf("Lookup(%s) = %v, want nil", name, c.Name)
		}
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(context.Background(), Config{}); err == nil {
		t.Error("expected error without patterns")
	}
	if _, err := Load(context.Background(), Config{Patterns: []string{"github.com/nonexistent/package"}}); err == nil {
		t.Error("expected error for a missing package")
	}
}

func TestParseDirectives(t *testing.T) {
	const src = `package p

// Get fetches.
//
//api:get
//api:path /{id}
//api:pathparam key id
//api:context ctx
func Get() {}

//api:bogus
func Bad() {}

//api:query
func Short() {}
`
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	docs := make(map[string]*ast.CommentGroup)
	for _, d := range f.Decls {
		fn := d.(*ast.FuncDecl)
		docs[fn.Name.Name] = fn.Doc
	}

	d, err := parseDirectives(fset, docs["Get"])
	if err != nil {
		t.Fatalf("parseDirectives failed: %v", err)
	}
	if want := (symbol.Annotations{{Name: "GET"}, {Name: "Path", Value: "/{id}"}}); !reflect.DeepEqual(d.decl, want) {
		t.Errorf("decl = %v, want %v", d.decl, want)
	}
	if want := (symbol.Annotations{{Name: "PathParam", Value: "id"}}); !reflect.DeepEqual(d.param("key"), want) {
		t.Errorf("param(key) = %v, want %v", d.param("key"), want)
	}
	if want := (symbol.Annotations{{Name: "Context", Value: "ctx"}}); !reflect.DeepEqual(d.param("ctx"), want) {
		t.Errorf("param(ctx) = %v, want %v", d.param("ctx"), want)
	}
	if got := docText(docs["Get"]); got != "Get fetches." {
		t.Errorf("docText = %q", got)
	}

	if _, err := parseDirectives(fset, docs["Bad"]); err == nil || !strings.Contains(err.Error(), "unknown directive //api:bogus") {
		t.Errorf("Bad: err = %v", err)
	}
	if _, err := parseDirectives(fset, docs["Short"]); err == nil || !strings.Contains(err.Error(), "requires a parameter name") {
		t.Errorf("Short: err = %v", err)
	}

	d, err = parseDirectives(fset, nil)
	if err != nil {
		t.Fatalf("nil comment group: %v", err)
	}
	if len(d.decl) != 0 {
		t.Errorf("decl = %v, want empty", d.decl)
	}
}

func TestTagAnnotations(t *testing.T) {
	tests := []struct {
		tag  string
		want symbol.Annotations
	}{
		{``, nil},
		{`json:"name"`, symbol.Annotations{{Name: "json", Value: "name"}}},
		{`json:"name,omitempty" yaml:"n"`, symbol.Annotations{{Name: "json", Value: "name,omitempty"}, {Name: "yaml", Value: "n"}}},
		{`json:"a\"b"`, symbol.Annotations{{Name: "json", Value: `a\"b`}}},
		{`broken`, nil},
		{`json:unquoted`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := tagAnnotations(tt.tag); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tagAnnotations(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}
