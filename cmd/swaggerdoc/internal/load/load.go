// Package load builds a configured Generator from command-line flags.
package load

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/broady/swaggerdoc"
	"github.com/broady/swaggerdoc/symbol"
	"github.com/broady/swaggerdoc/symbol/gosrc"
	"github.com/broady/swaggerdoc/symbol/memsrc"
)

// Flags select the symbol source and override configuration file values.
// Every flag can also be set from the environment.
type Flags struct {
	Source     string   `help:"Symbol source: go or yaml." enum:"go,yaml" default:"go" env:"SWAGGERDOC_SOURCE"`
	Packages   []string `help:"Go package patterns to load." short:"p" default:"./..." env:"SWAGGERDOC_PACKAGES"`
	IDL        string   `help:"YAML symbol file, used with --source=yaml." type:"path" env:"SWAGGERDOC_IDL"`
	Config     string   `help:"YAML options file." short:"c" type:"path" env:"SWAGGERDOC_CONFIG"`
	APIVersion string   `help:"Documented API version." name:"api-version" env:"SWAGGERDOC_API_VERSION"`
	BasePath   string   `help:"Base URL of the documented API." name:"base-path" env:"SWAGGERDOC_BASE_PATH"`
	DocPath    string   `help:"Base URL of the generated documents." name:"doc-path" env:"SWAGGERDOC_DOC_PATH"`
	Translator string   `help:"Naming strategy: namebased or json." env:"SWAGGERDOC_TRANSLATOR"`
	NoModels   bool     `help:"Skip model extraction." name:"no-models" env:"SWAGGERDOC_NO_MODELS"`
}

// Options reads the configuration file, if any, and applies flag overrides.
func (f *Flags) Options(logger *slog.Logger) (swaggerdoc.Options, error) {
	var opts swaggerdoc.Options
	if f.Config != "" {
		var err error
		if opts, err = swaggerdoc.LoadOptions(f.Config); err != nil {
			return opts, err
		}
	}
	if f.APIVersion != "" {
		opts.APIVersion = f.APIVersion
	}
	if f.BasePath != "" {
		opts.APIBasePath = f.BasePath
	}
	if f.DocPath != "" {
		opts.DocBasePath = f.DocPath
	}
	if f.Translator != "" {
		opts.Translator = f.Translator
	}
	if f.NoModels {
		opts.DisableModels = true
	}
	opts.Logger = logger
	return opts.WithDefaults(), nil
}

// Symbols loads the configured symbol source.
func (f *Flags) Symbols(ctx context.Context) (symbol.Source, error) {
	switch f.Source {
	case "yaml":
		if f.IDL == "" {
			return nil, fmt.Errorf("--idl is required with --source=yaml")
		}
		return memsrc.LoadFile(f.IDL)
	default:
		return gosrc.Load(ctx, gosrc.Config{Patterns: f.Packages})
	}
}

// Generator loads symbols and options and returns a ready Generator.
func (f *Flags) Generator(ctx context.Context, logger *slog.Logger) (*swaggerdoc.Generator, error) {
	opts, err := f.Options(logger)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	src, err := f.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}
	logger.Debug("loaded symbols", slog.String("source", f.Source), slog.Int("classes", len(src.Classes())))
	return swaggerdoc.New(src).WithOptions(opts), nil
}
