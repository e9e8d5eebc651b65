// Package oas3 converts Swagger 1.x resource declarations into an
// OpenAPI 3 document.
//
// Models become component schemas and operations become path items. Type
// names are mapped back from their documentation spelling, so "long" becomes
// an int64 schema and "List[Pet]" an array of Pet references.
package oas3

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/broady/swaggerdoc/swagger"
	"github.com/getkin/kin-openapi/openapi3"
)

// Version is the OpenAPI version written into converted documents.
const Version = "3.0.3"

// Info describes the converted API.
type Info struct {
	Title       string
	Description string
	Version     string

	// Server is the base URL of the API. Empty uses the basePath of the
	// first declaration.
	Server string
}

var (
	pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)
	componentUnsafe  = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
)

var arrayHeads = map[string]bool{
	"List":       true,
	"ArrayList":  true,
	"LinkedList": true,
	"Set":        true,
	"HashSet":    true,
	"SortedSet":  true,
	"Collection": true,
	"Iterable":   true,
	"Array":      true,
	"[]":         true,
}

var mapHeads = map[string]bool{
	"Map":     true,
	"HashMap": true,
	"TreeMap": true,
	"map":     true,
}

// Convert builds an OpenAPI document from decls and validates it.
func Convert(ctx context.Context, info Info, decls []*swagger.Declaration) (*openapi3.T, error) {
	c := newConverter(decls)
	doc := c.document(info, decls)
	if err := doc.Validate(ctx); err != nil {
		return doc, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type converter struct {
	// models maps every model id to its component name.
	models map[string]string
	// simple maps the simple name of a model id to its component name.
	simple map[string]string
	// schemas holds the component schemas, allocated before any is filled
	// so that references can point at them.
	schemas map[string]*openapi3.Schema
	opIDs   map[string]int
}

func newConverter(decls []*swagger.Declaration) *converter {
	c := &converter{
		models:  make(map[string]string),
		simple:  make(map[string]string),
		schemas: make(map[string]*openapi3.Schema),
		opIDs:   make(map[string]int),
	}
	for _, d := range decls {
		for _, id := range d.Models.IDs() {
			name := componentName(id)
			c.models[id] = name
			c.schemas[name] = new(openapi3.Schema)
			if _, taken := c.simple[simpleName(id)]; !taken {
				c.simple[simpleName(id)] = name
			}
		}
	}
	return c
}

func (c *converter) document(info Info, decls []*swagger.Declaration) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       info.Title,
			Description: info.Description,
			Version:     info.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	if doc.Info.Title == "" {
		doc.Info.Title = "API"
	}
	if doc.Info.Version == "" && len(decls) > 0 {
		doc.Info.Version = decls[0].APIVersion
	}

	server := info.Server
	if server == "" && len(decls) > 0 {
		server = decls[0].BasePath
	}
	if server != "" {
		doc.Servers = openapi3.Servers{{URL: server}}
	}

	for _, d := range decls {
		tag := strings.TrimPrefix(d.ResourcePath, "/")
		if tag != "" {
			doc.Tags = append(doc.Tags, &openapi3.Tag{Name: tag, Description: d.Description})
		}
		for _, m := range d.Models.Models() {
			name := c.models[m.ID]
			if _, done := doc.Components.Schemas[name]; done {
				continue
			}
			*c.schemas[name] = *c.modelSchema(m)
			doc.Components.Schemas[name] = openapi3.NewSchemaRef("", c.schemas[name])
		}
		for _, api := range d.APIs {
			item := doc.Paths.Value(api.Path)
			if item == nil {
				item = &openapi3.PathItem{}
				doc.Paths.Set(api.Path, item)
			}
			for _, op := range api.Operations {
				if op.Method == "" {
					continue
				}
				o := c.operation(op)
				if tag != "" {
					o.Tags = []string{tag}
				}
				item.SetOperation(string(op.Method), o)
			}
		}
	}
	return doc
}

func (c *converter) modelSchema(m *swagger.Model) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for _, p := range m.Properties() {
		if p.IsEnum() {
			prop := openapi3.NewStringSchema()
			for _, v := range p.Enum {
				prop.Enum = append(prop.Enum, v)
			}
			s.WithPropertyRef(p.Name, openapi3.NewSchemaRef("", prop))
			continue
		}
		ref := c.schemaRef(p.Type, p.ContainerOf)
		if ref == nil {
			continue
		}
		if ref.Ref == "" && p.Description != "" {
			ref.Value.Description = p.Description
		}
		s.WithPropertyRef(p.Name, ref)
	}
	return s
}

func (c *converter) operation(op *swagger.Operation) *openapi3.Operation {
	o := openapi3.NewOperation()
	o.OperationID = c.operationID(op.Name)
	o.Summary = op.Summary
	o.Description = op.Notes

	declared := make(map[string]bool)
	var form *openapi3.Schema
	for _, p := range op.Parameters {
		switch p.Kind {
		case swagger.ParamBody, swagger.ParamNone:
			if o.RequestBody != nil {
				continue
			}
			body := openapi3.NewRequestBody().WithRequired(true).WithDescription(p.Description)
			if ref := c.schemaRef(p.Type, ""); ref != nil {
				body.WithJSONSchemaRef(ref)
			}
			o.RequestBody = &openapi3.RequestBodyRef{Value: body}
		case swagger.ParamForm:
			if form == nil {
				form = openapi3.NewObjectSchema()
			}
			if ref := c.schemaRef(p.Type, ""); ref != nil {
				form.WithPropertyRef(p.Name, ref)
			}
		default:
			param := newParameter(p.Kind, p.Name)
			if param == nil {
				continue
			}
			param.Description = p.Description
			if ref := c.schemaRef(p.Type, ""); ref != nil {
				param.Schema = ref
			}
			if p.Kind == swagger.ParamPath {
				declared[p.Name] = true
			}
			o.AddParameter(param)
		}
	}
	if form != nil && o.RequestBody == nil {
		o.RequestBody = &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithContent(openapi3.NewContentWithFormDataSchema(form)),
		}
	}

	// Every template variable must be declared.
	for _, m := range pathParamPattern.FindAllStringSubmatch(op.Path, -1) {
		if !declared[m[1]] {
			declared[m[1]] = true
			o.AddParameter(openapi3.NewPathParameter(m[1]).WithSchema(openapi3.NewStringSchema()))
		}
	}

	o.Responses = c.responses(op)
	return o
}

func (c *converter) responses(op *swagger.Operation) *openapi3.Responses {
	responses := openapi3.NewResponses(openapi3.WithName("200", c.success(op)))
	codes := make([]int, 0, len(op.ResponseMessages))
	messages := make(map[int]string, len(op.ResponseMessages))
	for _, rm := range op.ResponseMessages {
		if _, dup := messages[rm.Code]; dup {
			continue
		}
		codes = append(codes, rm.Code)
		messages[rm.Code] = rm.Message
	}
	sort.Ints(codes)
	for _, code := range codes {
		key := strconv.Itoa(code)
		if code == http.StatusOK {
			responses.Value(key).Value.WithDescription(messages[code])
			continue
		}
		responses.Set(key, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription(messages[code]),
		})
	}
	return responses
}

func (c *converter) success(op *swagger.Operation) *openapi3.Response {
	resp := openapi3.NewResponse().WithDescription("successful operation")
	if op.ReturnType == "" || op.ReturnType == "void" {
		return resp
	}
	if ref := c.schemaRef(op.ReturnType, ""); ref != nil {
		resp.WithJSONSchemaRef(ref)
	}
	return resp
}

func (c *converter) operationID(name string) string {
	n := c.opIDs[name]
	c.opIDs[name] = n + 1
	if n == 0 {
		return name
	}
	return name + strconv.Itoa(n+1)
}

// schemaRef maps a documentation type name to a schema. containerOf, when
// set, names the type arguments of a property. It returns nil for void.
func (c *converter) schemaRef(typeName, containerOf string) *openapi3.SchemaRef {
	if typeName == "" || typeName == "void" {
		return nil
	}
	if name, ok := c.models[typeName]; ok {
		return c.ref(name)
	}
	if s := primitive(typeName); s != nil {
		return openapi3.NewSchemaRef("", s)
	}

	head, args := splitContainer(typeName)
	if containerOf != "" {
		args = strings.Split(containerOf, ", ")
	}
	switch {
	case arrayHeads[head] && len(args) == 1:
		s := openapi3.NewArraySchema()
		s.Items = c.elementRef(args[0])
		return openapi3.NewSchemaRef("", s)
	case mapHeads[head] && len(args) == 2:
		s := openapi3.NewObjectSchema()
		s.AdditionalProperties = openapi3.AdditionalProperties{Schema: c.elementRef(args[1])}
		return openapi3.NewSchemaRef("", s)
	}
	if name, ok := c.simple[typeName]; ok {
		return c.ref(name)
	}
	return openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
}

// elementRef is schemaRef for a container element, which may be spelled by
// its simple name.
func (c *converter) elementRef(name string) *openapi3.SchemaRef {
	if _, ok := c.models[name]; !ok {
		if comp, ok := c.simple[name]; ok {
			return c.ref(comp)
		}
	}
	if ref := c.schemaRef(name, ""); ref != nil {
		return ref
	}
	return openapi3.NewSchemaRef("", openapi3.NewObjectSchema())
}

func (c *converter) ref(component string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+component, c.schemas[component])
}

func newParameter(kind swagger.ParamKind, name string) *openapi3.Parameter {
	switch kind {
	case swagger.ParamPath:
		return openapi3.NewPathParameter(name)
	case swagger.ParamQuery:
		return openapi3.NewQueryParameter(name)
	case swagger.ParamHeader:
		return openapi3.NewHeaderParameter(name)
	}
	return nil
}

func primitive(name string) *openapi3.Schema {
	switch strings.ToLower(name) {
	case "int", "integer":
		return openapi3.NewInt32Schema()
	case "long":
		return openapi3.NewInt64Schema()
	case "float":
		return openapi3.NewFloat64Schema().WithFormat("float")
	case "double":
		return openapi3.NewFloat64Schema()
	case "string":
		return openapi3.NewStringSchema()
	case "boolean":
		return openapi3.NewBoolSchema()
	case "byte":
		return openapi3.NewStringSchema().WithFormat("byte")
	case "date":
		return openapi3.NewDateTimeSchema()
	}
	return nil
}

// splitContainer splits "List[Pet]" into "List" and ["Pet"].
func splitContainer(name string) (string, []string) {
	open := strings.IndexByte(name, '[')
	if open <= 0 || !strings.HasSuffix(name, "]") {
		if strings.HasPrefix(name, "[]") {
			return "[]", []string{name[2:]}
		}
		return name, nil
	}
	inner := name[open+1 : len(name)-1]
	if inner == "" {
		return name[:open], nil
	}
	return name[:open], strings.Split(inner, ", ")
}

func componentName(id string) string {
	return strings.Trim(componentUnsafe.ReplaceAllString(id, "_"), "_")
}

func simpleName(id string) string {
	if i := strings.LastIndexAny(id, "./"); i >= 0 {
		return id[i+1:]
	}
	return id
}
