// Package gosrc reads symbols from Go source code.
//
// Packages are loaded with golang.org/x/tools/go/packages. Every named struct
// and interface type declared in the loaded packages becomes a class, as does
// every named basic type with constants, which becomes an enum. Classes are
// named by import path and type name ("example.com/shop/api.User"). Types
// from dependencies are converted on demand by Lookup and kept in an LRU
// cache.
//
// Annotations come from //api: directives in doc comments and from struct
// tags:
//
//	// UserStore manages users.
//	//
//	//api:path /users
//	type UserStore struct{ Base }
//
//	// Get fetches one user.
//	//
//	// @param id the user id
//	// @HTTP 404 Not Found
//	//
//	//api:get
//	//api:path /{id}
//	//api:pathparam id
//	func (s *UserStore) Get(ctx context.Context, id int64) (*User, error)
//
// A struct embedding another named struct without a json tag extends it; the
// first such embedding is the superclass. Interfaces are taken from
// assertions of the form var _ Store[User] = (*UserStore)(nil). Methods
// matching an inherited method by name carry a synthetic Override
// annotation, and context.Context parameters carry Context.
package gosrc

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"github.com/broady/swaggerdoc/symbol"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/tools/go/packages"
)

// DefaultCacheSize bounds the dependency classes kept by Lookup.
const DefaultCacheSize = 512

// Config configures package loading.
type Config struct {
	// Patterns are go/packages patterns, e.g. "./api/..." or an import path.
	Patterns []string

	// Dir is the working directory for pattern resolution. Empty means the
	// current directory.
	Dir string

	// Tags are build tags applied while loading.
	Tags []string

	// CacheSize bounds the dependency classes kept in memory.
	// Default: DefaultCacheSize.
	CacheSize int
}

// Source is a symbol.Source backed by loaded Go packages.
// It is safe for concurrent use.
type Source struct {
	fset    *token.FileSet
	pkgs    map[string]*types.Package
	classes []*symbol.Class
	byName  map[string]*symbol.Class
	roots   map[*types.Package]bool
	deps    *lru.Cache[string, *symbol.Class]
}

var _ symbol.Source = (*Source)(nil)

// Load loads the packages matched by cfg.Patterns and converts their types.
func Load(ctx context.Context, cfg Config) (*Source, error) {
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	deps, err := lru.New[string, *symbol.Class](size)
	if err != nil {
		return nil, fmt.Errorf("create dependency cache: %w", err)
	}

	pcfg := &packages.Config{
		Context: ctx,
		Dir:     cfg.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedImports |
			packages.NeedDeps |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}
	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.Tags, ",")}
	}
	roots, err := packages.Load(pcfg, cfg.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("no packages found matching %v", cfg.Patterns)
	}
	for _, pkg := range roots {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors[0])
		}
	}

	src := &Source{
		fset:   pcfg.Fset,
		pkgs:   make(map[string]*types.Package),
		byName: make(map[string]*symbol.Class),
		roots:  make(map[*types.Package]bool),
		deps:   deps,
	}
	for _, pkg := range roots {
		src.roots[pkg.Types] = true
	}
	packages.Visit(roots, nil, func(p *packages.Package) {
		if p.Types != nil {
			src.pkgs[p.PkgPath] = p.Types
		}
	})
	if src.fset == nil && len(roots) > 0 {
		src.fset = roots[0].Fset
	}

	for _, pkg := range roots {
		if err := src.addPackage(pkg); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// Classes implements symbol.Source. Classes are ordered by package, then by
// declaration position.
func (s *Source) Classes() []*symbol.Class { return s.classes }

// Lookup implements symbol.Source. Types outside the loaded packages are
// converted without documentation on first use.
func (s *Source) Lookup(qualifiedName string) *symbol.Class {
	if c, ok := s.byName[qualifiedName]; ok {
		return c
	}
	if c, ok := s.deps.Get(qualifiedName); ok {
		return c
	}
	c := s.lookupDependency(qualifiedName)
	s.deps.Add(qualifiedName, c)
	return c
}

func (s *Source) lookupDependency(qualifiedName string) *symbol.Class {
	dot := strings.LastIndex(qualifiedName, ".")
	if dot <= 0 {
		return nil
	}
	pkg := s.pkgs[qualifiedName[:dot]]
	if pkg == nil {
		return nil
	}
	tn, ok := pkg.Scope().Lookup(qualifiedName[dot+1:]).(*types.TypeName)
	if !ok {
		return nil
	}
	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok {
		return nil
	}
	// Named basic types of dependencies are never enums.
	switch named.Underlying().(type) {
	case *types.Struct, *types.Interface:
	default:
		return nil
	}
	c, err := (&converter{fset: s.fset, roots: s.roots}).class(named, nil)
	if err != nil {
		return nil
	}
	return c
}

// addPackage converts the named struct and interface types of pkg.
func (s *Source) addPackage(pkg *packages.Package) error {
	idx, err := indexSyntax(s.fset, pkg.Syntax)
	if err != nil {
		return err
	}
	conv := &converter{fset: s.fset, syntax: idx, roots: s.roots}

	var names []*types.TypeName
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		switch tn.Type().Underlying().(type) {
		case *types.Struct, *types.Interface:
			names = append(names, tn)
		case *types.Basic:
			if len(enumConstants(tn.Type().(*types.Named))) > 0 {
				names = append(names, tn)
			}
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Pos() < names[j].Pos() })

	assertions := interfaceAssertions(pkg)
	for _, tn := range names {
		named := tn.Type().(*types.Named)
		c, err := conv.class(named, assertions[tn])
		if err != nil {
			return err
		}
		s.classes = append(s.classes, c)
		s.byName[c.Name] = c
	}
	return nil
}

// interfaceAssertions collects var _ I = (*T)(nil) and var _ I = T{}
// declarations, keyed by the asserted type.
func interfaceAssertions(pkg *packages.Package) map[*types.TypeName][]types.Type {
	out := make(map[*types.TypeName][]types.Type)
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.VAR {
				continue
			}
			for _, spec := range gd.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok || vs.Type == nil || len(vs.Values) != 1 || len(vs.Names) != 1 || vs.Names[0].Name != "_" {
					continue
				}
				iface := pkg.TypesInfo.TypeOf(vs.Type)
				if iface == nil || !types.IsInterface(iface) {
					continue
				}
				impl := pkg.TypesInfo.TypeOf(vs.Values[0])
				if ptr, ok := impl.(*types.Pointer); ok {
					impl = ptr.Elem()
				}
				named, ok := types.Unalias(impl).(*types.Named)
				if !ok {
					continue
				}
				out[named.Obj()] = append(out[named.Obj()], iface)
			}
		}
	}
	return out
}
