package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/broady/swaggerdoc/cmd/swaggerdoc/internal/load"
	"github.com/broady/swaggerdoc/export/oas3"
	"github.com/broady/swaggerdoc/sink"
	"github.com/dustin/go-humanize"
)

// OpenAPIFile is the name of the OpenAPI 3 document written with --openapi.
const OpenAPIFile = "openapi.json"

type Cmd struct {
	load.Flags `embed:""`

	Out      string `arg:"" help:"Output directory for generated files." type:"path"`
	OpenAPI  bool   `help:"Also write an OpenAPI 3 document." name:"openapi"`
	Title    string `help:"API title for the OpenAPI document." default:"API"`
	UIBundle string `help:"Zip archive unpacked into the output directory." name:"ui-bundle" type:"path" env:"SWAGGERDOC_UI_BUNDLE"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	g, err := c.Generator(ctx, logger)
	if err != nil {
		return err
	}
	if c.UIBundle != "" {
		g.UIBundle(c.UIBundle)
	}

	out := sink.NewCounting(sink.NewDir(c.Out))
	res, err := g.Generate(ctx, out)
	if err != nil {
		return err
	}

	if c.OpenAPI {
		opts := g.Options()
		doc, err := oas3.Convert(ctx, oas3.Info{
			Title:   c.Title,
			Version: opts.APIVersion,
			Server:  opts.APIBasePath,
		}, res.Declarations)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", OpenAPIFile, err)
		}
		if err := out.WriteFile(ctx, OpenAPIFile, append(data, '\n')); err != nil {
			return fmt.Errorf("write %s: %w", OpenAPIFile, err)
		}
	}

	logger.Info("generated documentation",
		slog.String("dir", c.Out),
		slog.Int("declarations", len(res.Declarations)),
		slog.Int64("files", out.Files()),
		slog.String("size", humanize.Bytes(out.Bytes())))
	return nil
}
