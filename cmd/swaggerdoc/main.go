package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/broady/swaggerdoc/cmd/swaggerdoc/internal/check"
	"github.com/broady/swaggerdoc/cmd/swaggerdoc/internal/gen"
	"github.com/broady/swaggerdoc/cmd/swaggerdoc/internal/serve"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

type CLI struct {
	LogLevel string `help:"Log level: debug, info, warn or error." default:"info" enum:"debug,info,warn,error" env:"SWAGGERDOC_LOG_LEVEL"`
	NoColor  bool   `help:"Disable colored log output." env:"NO_COLOR"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Swagger resource declarations and the resource listing."`
	Check   check.Cmd  `cmd:"" help:"Extract declarations and report counts without writing files."`
	Serve   serve.Cmd  `cmd:"" help:"Serve generated documentation over HTTP."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func (c *CLI) logger() *slog.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(c.LogLevel))
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:   level,
		NoColor: c.NoColor,
	}))
}

func main() {
	_ = godotenv.Load()

	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("swaggerdoc"),
		kong.Description("Generate Swagger 1.x documentation from annotated sources."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(cli.logger())
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
