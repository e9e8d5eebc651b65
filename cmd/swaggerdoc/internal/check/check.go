package check

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/swaggerdoc/cmd/swaggerdoc/internal/load"
	"github.com/broady/swaggerdoc/swagger"
)

type Cmd struct {
	load.Flags `embed:""`

	out io.Writer
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	g, err := c.Generator(ctx, logger)
	if err != nil {
		return err
	}
	decls, err := g.Declarations(ctx)
	if err != nil {
		return err
	}

	w := c.out
	if w == nil {
		w = os.Stdout
	}
	s := Summarize(decls)
	fmt.Fprintf(w, "✓ %d resources, %d operations, %d models\n", s.Resources, s.Operations, s.Models)
	return nil
}

// Summary counts the contents of a set of declarations.
type Summary struct {
	Resources  int
	Operations int
	Models     int
}

// Summarize counts resources, endpoint operations and distinct models.
func Summarize(decls []*swagger.Declaration) Summary {
	s := Summary{Resources: len(decls)}
	models := new(swagger.ModelSet)
	for _, d := range decls {
		for _, api := range d.APIs {
			s.Operations += len(api.Operations)
		}
		models.Merge(d.Models)
	}
	s.Models = models.Len()
	return s
}
