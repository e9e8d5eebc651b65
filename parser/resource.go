package parser

import (
	"sort"

	"github.com/broady/swaggerdoc/swagger"
	"github.com/broady/swaggerdoc/symbol"
)

// Resource is the result of parsing one resource class.
type Resource struct {
	Class *symbol.Class

	// Path is the class path annotation, the resource path of its declaration.
	Path string

	// APIs groups endpoints by path, sorted by path.
	APIs []swagger.API

	Models *swagger.ModelSet
}

// Operations returns the endpoints of every API in order.
func (r *Resource) Operations() []*swagger.Operation {
	var ops []*swagger.Operation
	for _, api := range r.APIs {
		ops = append(ops, api.Operations...)
	}
	return ops
}

// Resource parses every endpoint reachable from a class carrying a path
// annotation. Methods are taken from the class and from its superclasses
// unless shadowed. A method with a path but no verb is a sub-resource
// locator: the class it returns is parsed under the locator's path and
// parameters. A class without a path annotation yields an empty resource.
func (p *Parser) Resource(c *symbol.Class) *Resource {
	res := &Resource{Class: c, Path: pathOf(c.Annotations), Models: new(swagger.ModelSet)}
	if res.Path == "" {
		return res
	}
	w := &resourceWalk{p: p, res: res, visiting: make(map[string]bool)}
	w.visit(c, nil)
	res.APIs = groupByPath(w.ops)
	return res
}

// resourceWalk owns the state of one Resource call.
type resourceWalk struct {
	p        *Parser
	res      *Resource
	ops      []*swagger.Operation
	visiting map[string]bool
}

func (w *resourceWalk) visit(c *symbol.Class, parent *swagger.Operation) {
	w.visiting[c.Name] = true
	defer delete(w.visiting, c.Name)

	for _, m := range w.p.methods(c) {
		var op *swagger.Operation
		var models *swagger.ModelSet
		if parent == nil {
			op, models = w.p.Operation(w.res.Path, m)
		} else {
			op, models = w.p.SubOperation(parent, m)
		}
		if op == nil {
			continue
		}
		w.res.Models.Merge(models)
		if op.IsEndpoint() {
			w.ops = append(w.ops, op)
			continue
		}
		sub := w.p.src.Lookup(m.Returns.Name)
		if sub == nil || w.visiting[sub.Name] {
			continue
		}
		w.visit(sub, op)
	}
}

// methods returns the methods of c followed by the superclass methods c
// does not shadow, walking up the superclass chain.
func (p *Parser) methods(c *symbol.Class) []*symbol.Method {
	out := append([]*symbol.Method(nil), c.Methods...)
	seen := map[string]bool{c.Name: true}
	sc := c.Superclass
	for sc != nil {
		decl := p.src.Lookup(sc.Name)
		if decl == nil || seen[decl.Name] {
			break
		}
		seen[decl.Name] = true
		bindings := symbol.Bind(decl.TypeParams, sc.Args)
		for _, m := range decl.Methods {
			if !shadowed(out, m, bindings) {
				out = append(out, m)
			}
		}
		if decl.Superclass == nil {
			break
		}
		next := symbol.Substitute(*decl.Superclass, bindings)
		sc = &next
	}
	return out
}

func shadowed(methods []*symbol.Method, m *symbol.Method, bindings symbol.Bindings) bool {
	for _, own := range methods {
		if own.Name == m.Name && symbol.SameSignature(m.Params, own.Params, bindings) {
			return true
		}
	}
	return false
}

func groupByPath(ops []*swagger.Operation) []swagger.API {
	var apis []swagger.API
	index := make(map[string]int)
	for _, op := range ops {
		i, ok := index[op.Path]
		if !ok {
			i = len(apis)
			index[op.Path] = i
			apis = append(apis, swagger.API{Path: op.Path})
		}
		apis[i].Operations = append(apis[i].Operations, op)
	}
	sort.SliceStable(apis, func(i, j int) bool { return apis[i].Path < apis[j].Path })
	return apis
}
