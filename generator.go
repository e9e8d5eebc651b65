// Package swaggerdoc generates Swagger 1.x documentation from annotated
// source symbols.
//
// A Generator reads classes from a symbol.Source, extracts one resource
// declaration per class carrying a path annotation, and writes the
// declarations plus a resource listing to a sink:
//
//	src, _ := gosrc.Load(ctx, gosrc.Config{Patterns: []string{"./api/..."}})
//	res, err := swaggerdoc.New(src).
//	    APIVersion("1.0").
//	    BasePath("https://api.example.com").
//	    Generate(ctx, sink.NewDir("./docs"))
package swaggerdoc

import (
	"context"
	"log/slog"

	"github.com/broady/swaggerdoc/parser"
	"github.com/broady/swaggerdoc/swagger"
	"github.com/broady/swaggerdoc/symbol"
	"github.com/broady/swaggerdoc/sink"
	"golang.org/x/sync/errgroup"
)

// Generator provides a fluent API for documentation generation.
// Create with New and configure with method chaining.
type Generator struct {
	src  symbol.Source
	opts Options
}

// New creates a Generator reading from src.
func New(src symbol.Source) *Generator {
	return &Generator{src: src}
}

// WithOptions replaces the whole configuration.
func (g *Generator) WithOptions(o Options) *Generator {
	g.opts = o
	return g
}

// APIVersion sets the documented API version.
func (g *Generator) APIVersion(v string) *Generator {
	g.opts.APIVersion = v
	return g
}

// BasePath sets the API base path written into every declaration.
func (g *Generator) BasePath(p string) *Generator {
	g.opts.APIBasePath = p
	return g
}

// DocBasePath sets the base path written into the resource listing.
func (g *Generator) DocBasePath(p string) *Generator {
	g.opts.DocBasePath = p
	return g
}

// Translator selects the naming strategy by name.
func (g *Generator) Translator(name string) *Generator {
	g.opts.Translator = name
	return g
}

// Opaque adds types that are never expanded into models.
func (g *Generator) Opaque(types ...string) *Generator {
	g.opts.OpaqueTypes = append(g.opts.OpaqueTypes, types...)
	return g
}

// ErrorTags sets the documentation tags parsed as response messages.
func (g *Generator) ErrorTags(tags ...string) *Generator {
	g.opts.ErrorTags = tags
	return g
}

// WithoutModels disables model extraction for operations.
func (g *Generator) WithoutModels() *Generator {
	g.opts.DisableModels = true
	return g
}

// UIBundle sets a zip archive to unpack into the output.
func (g *Generator) UIBundle(path string) *Generator {
	g.opts.UIBundle = path
	return g
}

// Concurrency bounds the number of classes processed at once.
func (g *Generator) Concurrency(n int) *Generator {
	g.opts.Concurrency = n
	return g
}

// WithLogger sets the logger for progress output.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	g.opts.Logger = l
	return g
}

// Options returns the effective configuration, with defaults applied.
func (g *Generator) Options() Options { return g.opts.WithDefaults() }

// Result describes a completed generation.
type Result struct {
	Declarations []*swagger.Declaration
	Listing      *swagger.ResourceListing

	// Files lists the paths written, in write order.
	Files []string
}

// Generate extracts every declaration and writes them to out.
func (g *Generator) Generate(ctx context.Context, out sink.Sink) (*Result, error) {
	decls, err := g.Declarations(ctx)
	if err != nil {
		return nil, err
	}
	return g.Write(ctx, out, decls)
}

// Declarations extracts one declaration per resource class, in class order.
// Classes are processed concurrently; classes without endpoints are skipped.
func (g *Generator) Declarations(ctx context.Context) ([]*swagger.Declaration, error) {
	opts, p, err := g.prepare()
	if err != nil {
		return nil, err
	}
	log := opts.Logger

	classes := g.src.Classes()
	results := make([]*swagger.Declaration, len(classes))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Concurrency)
	for i, c := range classes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := p.Resource(c)
			if len(res.APIs) == 0 {
				log.Debug("skipping class without endpoints", slog.String("class", c.Name))
				return nil
			}
			results[i] = &swagger.Declaration{
				APIVersion:     opts.APIVersion,
				SwaggerVersion: opts.SwaggerVersion,
				BasePath:       opts.APIBasePath,
				ResourcePath:   res.Path,
				APIs:           res.APIs,
				Models:         res.Models,
				Description:    classDescription(c),
			}
			log.Debug("parsed resource",
				slog.String("class", c.Name),
				slog.String("path", res.Path),
				slog.Int("apis", len(res.APIs)),
				slog.Int("models", res.Models.Len()))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, AsError(err)
	}

	decls := make([]*swagger.Declaration, 0, len(results))
	for _, d := range results {
		if d != nil {
			decls = append(decls, d)
		}
	}
	log.Info("extracted declarations",
		slog.Int("classes", len(classes)),
		slog.Int("declarations", len(decls)))
	return decls, nil
}

// Models runs the model extractor on a single type.
func (g *Generator) Models(root symbol.Type) (*swagger.ModelSet, error) {
	_, p, err := g.prepare()
	if err != nil {
		return nil, err
	}
	return p.Models(root), nil
}

func (g *Generator) prepare() (Options, *parser.Parser, error) {
	opts := g.opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return opts, nil, err
	}
	popts, err := opts.parserOptions()
	if err != nil {
		return opts, nil, err
	}
	p, err := parser.New(g.src, popts)
	if err != nil {
		return opts, nil, AsError(err)
	}
	return opts, p, nil
}

// classDescription is the first sentence of the class comment, or the whole
// comment when it has no sentence break.
func classDescription(c *symbol.Class) string {
	if c.Doc.FirstSentence != "" {
		return c.Doc.FirstSentence
	}
	return c.Doc.Text
}
