package memsrc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/broady/swaggerdoc/symbol"
	"gopkg.in/yaml.v3"
)

// File is the YAML description of a symbol graph.
//
//	classes:
//	  - name: com.acme.UserResource
//	    annotations: ["Path /users"]
//	    interfaces: ["com.acme.Store<java.lang.String, java.lang.Long>"]
//	    methods:
//	      - name: get
//	        annotations: [GET, "Path /{id}", Override]
//	        returns: java.lang.String
//	        params:
//	          - {name: id, type: java.lang.Long, annotations: ["PathParam id"]}
//	        doc: |
//	          {@inheritDoc}
type File struct {
	Classes []ClassSpec `yaml:"classes"`
}

// ClassSpec describes one class.
type ClassSpec struct {
	Name        string       `yaml:"name"`
	Doc         string       `yaml:"doc"`
	Annotations []string     `yaml:"annotations"`
	TypeParams  []string     `yaml:"typeParams"`
	Superclass  string       `yaml:"superclass"`
	Interfaces  []string     `yaml:"interfaces"`
	Enum        []string     `yaml:"enum"`
	Fields      []FieldSpec  `yaml:"fields"`
	Methods     []MethodSpec `yaml:"methods"`
}

// FieldSpec describes one field.
type FieldSpec struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Doc         string   `yaml:"doc"`
	Annotations []string `yaml:"annotations"`
}

// MethodSpec describes one method.
type MethodSpec struct {
	Name        string      `yaml:"name"`
	Returns     string      `yaml:"returns"`
	Doc         string      `yaml:"doc"`
	Annotations []string    `yaml:"annotations"`
	Params      []ParamSpec `yaml:"params"`
}

// ParamSpec describes one method parameter.
type ParamSpec struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Annotations []string `yaml:"annotations"`
}

// LoadFile reads a YAML symbol description from path.
func LoadFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML symbol description.
func Load(r io.Reader) (*Source, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode symbols: %w", err)
	}
	return file.Build()
}

// Build converts the description into a Source.
func (f *File) Build() (*Source, error) {
	classes := make([]*symbol.Class, 0, len(f.Classes))
	for _, cs := range f.Classes {
		c, err := cs.build()
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", cs.Name, err)
		}
		classes = append(classes, c)
	}
	return New(classes...), nil
}

func (cs ClassSpec) build() (*symbol.Class, error) {
	if cs.Name == "" {
		return nil, fmt.Errorf("missing name")
	}
	c := &symbol.Class{
		Name:          cs.Name,
		Doc:           symbol.ParseDoc(cs.Doc),
		Annotations:   parseAnnotations(cs.Annotations),
		TypeParams:    cs.TypeParams,
		Enum:          len(cs.Enum) > 0,
		EnumConstants: cs.Enum,
	}
	if cs.Superclass != "" {
		t, err := ParseType(cs.Superclass, cs.TypeParams...)
		if err != nil {
			return nil, err
		}
		c.Superclass = &t
	}
	for _, expr := range cs.Interfaces {
		t, err := ParseType(expr, cs.TypeParams...)
		if err != nil {
			return nil, err
		}
		c.Interfaces = append(c.Interfaces, t)
	}
	for _, fs := range cs.Fields {
		t, err := ParseType(fs.Type, cs.TypeParams...)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fs.Name, err)
		}
		c.Fields = append(c.Fields, &symbol.Field{
			Name:        fs.Name,
			Type:        t,
			Annotations: parseAnnotations(fs.Annotations),
			Doc:         symbol.ParseDoc(fs.Doc),
		})
	}
	for _, ms := range cs.Methods {
		m, err := ms.build(cs.TypeParams)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", ms.Name, err)
		}
		c.Methods = append(c.Methods, m)
	}
	return c, nil
}

func (ms MethodSpec) build(typeParams []string) (*symbol.Method, error) {
	returns := symbol.Void
	if ms.Returns != "" {
		t, err := ParseType(ms.Returns, typeParams...)
		if err != nil {
			return nil, err
		}
		returns = t
	}
	m := &symbol.Method{
		Name:        ms.Name,
		Returns:     returns,
		Annotations: parseAnnotations(ms.Annotations),
		Doc:         symbol.ParseDoc(ms.Doc),
	}
	for _, ps := range ms.Params {
		t, err := ParseType(ps.Type, typeParams...)
		if err != nil {
			return nil, fmt.Errorf("param %s: %w", ps.Name, err)
		}
		m.Params = append(m.Params, &symbol.Param{
			Name:        ps.Name,
			Type:        t,
			Annotations: parseAnnotations(ps.Annotations),
		})
	}
	return m, nil
}

// parseAnnotations reads "Name value" strings.
func parseAnnotations(in []string) symbol.Annotations {
	if len(in) == 0 {
		return nil
	}
	out := make(symbol.Annotations, 0, len(in))
	for _, s := range in {
		name, value, _ := strings.Cut(strings.TrimSpace(s), " ")
		out = append(out, symbol.Annotation{Name: name, Value: strings.TrimSpace(value)})
	}
	return out
}
