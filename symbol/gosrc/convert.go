package gosrc

import (
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"sort"

	"github.com/broady/swaggerdoc/symbol"
)

// syntaxIndex maps declaration positions to their comments.
type syntaxIndex struct {
	// docs holds the doc comment of every type, method, func and field,
	// keyed by the position of its name.
	docs map[token.Pos]*ast.CommentGroup
	// directives holds the parsed //api: lines, keyed the same way.
	directives map[token.Pos]directives
}

func indexSyntax(fset *token.FileSet, files []*ast.File) (*syntaxIndex, error) {
	idx := &syntaxIndex{
		docs:       make(map[token.Pos]*ast.CommentGroup),
		directives: make(map[token.Pos]directives),
	}
	add := func(name *ast.Ident, docs ...*ast.CommentGroup) error {
		for _, cg := range docs {
			if cg == nil {
				continue
			}
			d, err := parseDirectives(fset, cg)
			if err != nil {
				return err
			}
			idx.docs[name.Pos()] = cg
			idx.directives[name.Pos()] = d
			return nil
		}
		return nil
	}

	for _, file := range files {
		var err error
		ast.Inspect(file, func(n ast.Node) bool {
			if err != nil {
				return false
			}
			switch decl := n.(type) {
			case *ast.GenDecl:
				for _, spec := range decl.Specs {
					if ts, ok := spec.(*ast.TypeSpec); ok {
						if err = add(ts.Name, ts.Doc, decl.Doc); err != nil {
							return false
						}
					}
				}
			case *ast.FuncDecl:
				err = add(decl.Name, decl.Doc)
				return false
			case *ast.Field:
				for _, name := range decl.Names {
					if err = add(name, decl.Doc, decl.Comment); err != nil {
						return false
					}
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// converter turns go/types declarations into classes. syntax is nil for
// dependency packages, whose classes carry no documentation.
type converter struct {
	fset   *token.FileSet
	syntax *syntaxIndex

	// roots holds the loaded packages. Only their named basic types with
	// constants are enums; dependency basics document as their underlying type.
	roots map[*types.Package]bool
}

func (cv *converter) isEnum(named *types.Named) bool {
	return cv.roots[named.Obj().Pkg()] && len(enumConstants(named)) > 0
}

func (cv *converter) doc(pos token.Pos) symbol.Doc {
	if cv.syntax == nil {
		return symbol.Doc{}
	}
	return symbol.ParseDoc(docText(cv.syntax.docs[pos]))
}

func (cv *converter) directives(pos token.Pos) directives {
	if cv.syntax == nil {
		return directives{}
	}
	return cv.syntax.directives[pos]
}

func (cv *converter) position(pos token.Pos) symbol.Position {
	if cv.fset == nil || !pos.IsValid() {
		return symbol.Position{}
	}
	p := cv.fset.Position(pos)
	return symbol.Position{File: p.Filename, Line: p.Line, Column: p.Column}
}

// class converts a named struct, interface or basic-kind enum type.
func (cv *converter) class(named *types.Named, interfaces []types.Type) (*symbol.Class, error) {
	obj := named.Obj()
	c := &symbol.Class{
		Name:        qualifiedName(obj),
		Doc:         cv.doc(obj.Pos()),
		Annotations: cv.directives(obj.Pos()).decl,
		Pos:         cv.position(obj.Pos()),
	}
	if tparams := named.TypeParams(); tparams != nil {
		for i := 0; i < tparams.Len(); i++ {
			c.TypeParams = append(c.TypeParams, tparams.At(i).Obj().Name())
		}
	}
	for _, iface := range interfaces {
		c.Interfaces = append(c.Interfaces, cv.convertType(iface))
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		cv.structMembers(c, u)
		if err := cv.methods(c, named); err != nil {
			return nil, err
		}
	case *types.Interface:
		for i := 0; i < u.NumEmbeddeds(); i++ {
			if e, ok := types.Unalias(u.EmbeddedType(i)).(*types.Named); ok && types.IsInterface(e) {
				c.Interfaces = append(c.Interfaces, cv.convertType(e))
			}
		}
		for i := 0; i < u.NumExplicitMethods(); i++ {
			m, err := cv.method(u.ExplicitMethod(i))
			if err != nil {
				return nil, err
			}
			c.Methods = append(c.Methods, m)
		}
	case *types.Basic:
		if cv.roots[obj.Pkg()] {
			c.EnumConstants = enumConstants(named)
			c.Enum = len(c.EnumConstants) > 0
		}
	}

	markOverrides(c, named, interfaces)
	return symbol.Link(c), nil
}

// structMembers converts exported fields. The first embedded named struct
// without a json tag becomes the superclass; its fields are not copied.
func (cv *converter) structMembers(c *symbol.Class, st *types.Struct) {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		tags := tagAnnotations(st.Tag(i))
		json, hasJSON := tags.Get("json")
		if hasJSON && json.Value == "-" {
			continue
		}
		if f.Embedded() && !hasJSON {
			t := f.Type()
			if ptr, ok := t.(*types.Pointer); ok {
				t = ptr.Elem()
			}
			if named, ok := types.Unalias(t).(*types.Named); ok && c.Superclass == nil {
				if _, isStruct := named.Underlying().(*types.Struct); isStruct {
					sup := cv.convertType(named)
					c.Superclass = &sup
				}
			}
			continue
		}
		if !f.Exported() {
			continue
		}
		c.Fields = append(c.Fields, &symbol.Field{
			Name:        f.Name(),
			Type:        cv.convertType(f.Type()),
			Annotations: tags,
			Doc:         cv.doc(f.Pos()),
		})
	}
}

// methods converts the exported methods declared on named, value and
// pointer receivers alike, in declaration order.
func (cv *converter) methods(c *symbol.Class, named *types.Named) error {
	var fns []*types.Func
	for i := 0; i < named.NumMethods(); i++ {
		if fn := named.Method(i); fn.Exported() {
			fns = append(fns, fn)
		}
	}
	sort.SliceStable(fns, func(i, j int) bool { return fns[i].Pos() < fns[j].Pos() })
	for _, fn := range fns {
		m, err := cv.method(fn)
		if err != nil {
			return err
		}
		c.Methods = append(c.Methods, m)
	}
	return nil
}

func (cv *converter) method(fn *types.Func) (*symbol.Method, error) {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a function", cv.position(fn.Pos()), fn.Name())
	}
	dirs := cv.directives(fn.Pos())
	m := &symbol.Method{
		Name:        fn.Name(),
		Returns:     cv.returnType(sig),
		Annotations: dirs.decl,
		Doc:         cv.doc(fn.Pos()),
		Pos:         cv.position(fn.Pos()),
	}

	known := make(map[string]bool)
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		known[name] = true
		p := &symbol.Param{
			Name:        name,
			Type:        cv.convertType(v.Type()),
			Annotations: dirs.param(name),
		}
		if isContext(v.Type()) && !p.Annotations.Has("Context") {
			p.Annotations = append(p.Annotations, symbol.Annotation{Name: "Context"})
		}
		m.Params = append(m.Params, p)
	}
	for name := range dirs.params {
		if !known[name] {
			return nil, fmt.Errorf("%s: directive names unknown parameter %q of %s", cv.position(fn.Pos()), name, fn.Name())
		}
	}
	return m, nil
}

// returnType is the first result that is not an error, or void.
func (cv *converter) returnType(sig *types.Signature) symbol.Type {
	results := sig.Results()
	for i := 0; i < results.Len(); i++ {
		t := results.At(i).Type()
		if isError(t) {
			continue
		}
		return cv.convertType(t)
	}
	return symbol.Void
}

// markOverrides adds an Override annotation to methods that share a name
// with a method of the embedded superclass or an asserted interface.
func markOverrides(c *symbol.Class, named *types.Named, interfaces []types.Type) {
	inherited := make(map[string]bool)
	var collect func(t types.Type)
	collect = func(t types.Type) {
		if ptr, ok := t.(*types.Pointer); ok {
			t = ptr.Elem()
		}
		t = types.Unalias(t)
		if iface, ok := t.Underlying().(*types.Interface); ok {
			for i := 0; i < iface.NumMethods(); i++ {
				inherited[iface.Method(i).Name()] = true
			}
			return
		}
		if n, ok := t.(*types.Named); ok {
			for i := 0; i < n.NumMethods(); i++ {
				inherited[n.Method(i).Name()] = true
			}
		}
	}
	for _, iface := range interfaces {
		collect(iface)
	}
	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			if f := st.Field(i); f.Embedded() {
				collect(f.Type())
			}
		}
	}
	for _, m := range c.Methods {
		if inherited[m.Name] && !m.Annotations.Has("Override") {
			m.Annotations = append(m.Annotations, symbol.Annotation{Name: "Override"})
		}
	}
}

// enumConstants lists the exported constants of type named in declaration
// order. String constants contribute their value, others their name.
func enumConstants(named *types.Named) []string {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}
	var consts []*types.Const
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && c.Exported() && types.Identical(c.Type(), named) {
			consts = append(consts, c)
		}
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	// A constant repeating an earlier value is an alias and is dropped.
	seen := make(map[string]bool)
	var out []string
	for _, c := range consts {
		key := c.Val().ExactString()
		if seen[key] {
			continue
		}
		seen[key] = true
		if c.Val().Kind() == constant.String {
			out = append(out, constant.StringVal(c.Val()))
		} else {
			out = append(out, c.Name())
		}
	}
	return out
}

// convertType maps a Go type to a type expression. Slices and arrays become
// List containers and maps become Map containers.
func (cv *converter) convertType(t types.Type) symbol.Type {
	switch typ := t.(type) {
	case *types.Alias:
		return cv.convertType(types.Unalias(typ))

	case *types.Basic:
		if typ.Kind() == types.UntypedNil || typ.Kind() == types.Invalid {
			return symbol.Any()
		}
		return symbol.Primitive(typ.Name())

	case *types.Pointer:
		return cv.convertType(typ.Elem())

	case *types.Slice:
		if b, ok := typ.Elem().(*types.Basic); ok && (b.Kind() == types.Byte || b.Kind() == types.Uint8) {
			return symbol.Primitive("[]byte")
		}
		return symbol.Container("List", cv.convertType(typ.Elem()))

	case *types.Array:
		return symbol.Container("List", cv.convertType(typ.Elem()))

	case *types.Map:
		return symbol.Container("Map", cv.convertType(typ.Key()), cv.convertType(typ.Elem()))

	case *types.TypeParam:
		return symbol.TypeVar(typ.Obj().Name())

	case *types.Named:
		obj := typ.Obj()
		if obj.Pkg() == nil {
			// Universe types: error and comparable.
			return symbol.Primitive(obj.Name())
		}
		switch u := typ.Underlying().(type) {
		case *types.Interface:
			if u.Empty() {
				return symbol.Any()
			}
		case *types.Basic:
			// Named basics that are not enums document as their underlying type.
			if qualifiedName(obj) != "time.Duration" && !cv.isEnum(typ) {
				return symbol.Primitive(u.Name())
			}
		}
		out := symbol.Named(qualifiedName(obj))
		if args := typ.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				out.Args = append(out.Args, cv.convertType(args.At(i)))
			}
		}
		return out

	default:
		// Anonymous structs, non-empty unnamed interfaces, channels and funcs.
		return symbol.Any()
	}
}

func qualifiedName(obj types.Object) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func isContext(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == "context" && named.Obj().Name() == "Context"
}
