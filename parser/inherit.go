package parser

import (
	"strings"

	"github.com/broady/swaggerdoc/symbol"
)

// docSource returns the method whose documentation describes m.
//
// Inherited documentation is looked up when m overrides without a comment of
// its own, or when its comment contains {@inheritDoc}. The superclass is
// searched first, then each implemented interface in declaration order.
// Candidate signatures are compared structurally after binding the declaring
// class's type variables to the arguments given at m's owner. The first match
// wins; otherwise m documents itself.
func (p *Parser) docSource(m *symbol.Method) *symbol.Method {
	if !wantsInheritedDoc(m) || m.Owner == nil {
		return m
	}
	owner := m.Owner
	if owner.Superclass != nil {
		if found := p.findOverridden(*owner.Superclass, m); found != nil {
			return found
		}
	}
	for _, iface := range owner.Interfaces {
		if found := p.findOverridden(iface, m); found != nil {
			return found
		}
	}
	return m
}

func wantsInheritedDoc(m *symbol.Method) bool {
	if m.Annotations.Has(OverrideAnnotation) && m.Doc.Text == "" {
		return true
	}
	return strings.Contains(m.Doc.Text, symbol.InheritDocTag)
}

// findOverridden searches the declaration of parent for a method matching
// m's name (case-insensitively) and signature.
func (p *Parser) findOverridden(parent symbol.Type, m *symbol.Method) *symbol.Method {
	decl := p.src.Lookup(parent.Name)
	if decl == nil {
		return nil
	}
	bindings := symbol.Bind(decl.TypeParams, parent.Args)
	for _, cand := range decl.Methods {
		if strings.EqualFold(cand.Name, m.Name) && symbol.SameSignature(cand.Params, m.Params, bindings) {
			return cand
		}
	}
	return nil
}
