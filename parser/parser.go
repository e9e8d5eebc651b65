// Package parser extracts Swagger models and operations from a symbol source.
//
// A Parser is configured once and is safe for concurrent use: every call owns
// its own traversal state and returns fresh values.
//
//	p, err := parser.New(src, parser.Options{Translator: translator.NameBased{}})
//	models := p.Models(symbol.Named("com.acme.User"))
//	op, opModels := p.Operation("/users", method)
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/broady/swaggerdoc/symbol"
	"github.com/broady/swaggerdoc/translator"
)

// Options configures a Parser.
type Options struct {
	// Translator names types, fields and methods. Required.
	Translator translator.Translator

	// OpaqueTypes are qualified type names never expanded into models.
	OpaqueTypes []string

	// ExcludedAnnotations excludes any parameter carrying one of them.
	ExcludedAnnotations []string

	// ErrorTags are documentation tag names parsed as response messages,
	// e.g. "HTTP" for "@HTTP 404 Not Found".
	ErrorTags []string

	// ExcludedNamespaces are qualified-name prefixes of system types that are
	// never expanded into models, e.g. "java.".
	ExcludedNamespaces []string

	// ParseModels also collects models for operation parameter and return types.
	ParseModels bool
}

// ErrNoTranslator is reported when Options.Translator is nil.
var ErrNoTranslator = errors.New("no type translator configured")

// ErrNoSource is reported when New is called without a symbol source.
var ErrNoSource = errors.New("no symbol source configured")

// ConfigError reports an unusable Parser configuration.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("parser config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Parser extracts models and operations from a symbol source.
type Parser struct {
	src    symbol.Source
	tr     translator.Translator
	opts   Options
	opaque map[string]bool
}

// New returns a Parser reading from src.
// It fails only on configuration errors.
func New(src symbol.Source, opts Options) (*Parser, error) {
	if src == nil {
		return nil, &ConfigError{Field: "Source", Err: ErrNoSource}
	}
	if opts.Translator == nil {
		return nil, &ConfigError{Field: "Translator", Err: ErrNoTranslator}
	}
	opaque := make(map[string]bool, len(opts.OpaqueTypes))
	for _, name := range opts.OpaqueTypes {
		opaque[name] = true
	}
	return &Parser{src: src, tr: opts.Translator, opts: opts, opaque: opaque}, nil
}

// Source returns the symbol source the parser reads from.
func (p *Parser) Source() symbol.Source { return p.src }

// Translator returns the configured naming strategy.
func (p *Parser) Translator() translator.Translator { return p.tr }

func (p *Parser) excludedNamespace(name string) bool {
	for _, prefix := range p.opts.ExcludedNamespaces {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func (p *Parser) typeName(t symbol.Type) string {
	return p.tr.TypeName(t).Value()
}
