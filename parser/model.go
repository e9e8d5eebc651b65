package parser

import (
	"strings"

	"github.com/broady/swaggerdoc/swagger"
	"github.com/broady/swaggerdoc/symbol"
)

// Models expands root into the set of models reachable from it.
//
// Types are expanded depth-first in member order. A type is skipped before
// any of its members are visited when it is primitive, in an excluded
// namespace, the universal base type, opaque, has no declaration in the
// source, or its model id was already produced. The id check makes the
// traversal terminate on cyclic type graphs.
func (p *Parser) Models(root symbol.Type) *swagger.ModelSet {
	tr := &traversal{p: p, models: new(swagger.ModelSet)}
	tr.run(root)
	return tr.models
}

// traversal owns the state of one Models call.
type traversal struct {
	p      *Parser
	models *swagger.ModelSet

	// pending is a LIFO worklist. Children are pushed in reverse so that
	// pops follow depth-first pre-order.
	pending []symbol.Type
}

func (tr *traversal) run(root symbol.Type) {
	tr.pending = append(tr.pending, root)
	for len(tr.pending) > 0 {
		t := tr.pending[len(tr.pending)-1]
		tr.pending = tr.pending[:len(tr.pending)-1]
		tr.expand(t)
	}
}

func (tr *traversal) expand(t symbol.Type) {
	class, id, ok := tr.resolve(t)
	if !ok {
		return
	}

	bindings := symbol.Bind(class.TypeParams, t.Args)
	model := swagger.NewModel(id)
	var members []symbol.Type

	for _, m := range class.Methods {
		name := tr.p.tr.MethodName(m)
		if !name.OK() || model.Has(name.Value()) {
			continue
		}
		typ := symbol.Substitute(m.Returns, bindings)
		model.Add(tr.p.property(name.Value(), typ, methodDescription(m)))
		members = append(members, typ)
	}
	for _, f := range class.Fields {
		name := tr.p.tr.FieldName(f)
		if !name.OK() || model.Has(name.Value()) {
			continue
		}
		typ := symbol.Substitute(f.Type, bindings)
		model.Add(tr.p.property(name.Value(), typ, f.Doc.FirstSentence))
		members = append(members, typ)
	}

	if model.Len() == 0 {
		return
	}
	tr.models.Add(model)

	// Pushed in reverse: each member, then its type arguments.
	for i := len(members) - 1; i >= 0; i-- {
		for j := len(members[i].Args) - 1; j >= 0; j-- {
			tr.pending = append(tr.pending, members[i].Args[j])
		}
		tr.pending = append(tr.pending, members[i])
	}
}

// resolve applies the skip rules and returns the declaration and model id of t.
func (tr *traversal) resolve(t symbol.Type) (*symbol.Class, string, bool) {
	switch t.Kind {
	case symbol.KindPrimitive, symbol.KindAny, symbol.KindTypeVar, symbol.KindContainer:
		return nil, "", false
	}
	if t.Name == symbol.AnyName || tr.p.excludedNamespace(t.Name) || tr.p.opaque[t.Name] {
		return nil, "", false
	}
	class := tr.p.src.Lookup(t.Name)
	if class == nil {
		return nil, "", false
	}
	id := tr.p.tr.TypeName(t)
	if !id.OK() || tr.models.Has(id.Value()) {
		return nil, "", false
	}
	return class, id.Value(), true
}

// property builds the Property of a member typed t.
func (p *Parser) property(name string, t symbol.Type, description string) swagger.Property {
	if t.Kind == symbol.KindClass {
		if c := p.src.Lookup(t.Name); c != nil && c.Enum {
			return swagger.Property{Name: name, Enum: append([]string{}, c.EnumConstants...)}
		}
	}
	return swagger.Property{
		Name:        name,
		Type:        p.typeName(t),
		Description: description,
		ContainerOf: p.containerOf(t),
	}
}

// containerOf names the type arguments of a parameterized type.
func (p *Parser) containerOf(t symbol.Type) string {
	if !t.Parameterized() {
		return ""
	}
	names := make([]string, len(t.Args))
	for i, a := range t.Args {
		names[i] = p.typeName(a)
	}
	return strings.Join(names, ", ")
}

// methodDescription prefers the @return text over the full comment.
func methodDescription(m *symbol.Method) string {
	if tags := m.Doc.TagsNamed("return"); len(tags) > 0 {
		return tags[0].Text
	}
	return m.Doc.Text
}
