package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Globals is shared state bound into every command's Run method.
type Globals struct {
	Ctx    context.Context
	Logger zerolog.Logger
	Stdout io.Writer
}

// CLI definition and global flags.
type CLI struct {
	Config  string `short:"c" help:"Site configuration file" default:"site.yaml" env:"HYPERUI_CONFIG"`
	Verbose bool   `short:"v" help:"Enable debug logging" env:"HYPERUI_VERBOSE"`
	Unsafe  bool   `help:"Disable HTML sanitization of page bodies"`
	EditML  bool   `name:"editml" help:"Render EditML markup in page bodies as its clean view"`

	Gen    GenCmd    `cmd:"" help:"Generate the site into the output directory"`
	Routes RoutesCmd `cmd:"" help:"List every route the content store defines"`
	Serve  ServeCmd  `cmd:"" help:"Serve the site locally with live reload"`
	New    NewCmd    `cmd:"" help:"Scaffold a new site or component"`
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	// A missing .env is fine; existing variables are never overridden.
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("hyperui"),
		kong.Description("Build the Tailwind component catalog from MDX documents."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	logger := newLogger(os.Stderr, cli.Verbose)
	err := kctx.Run(&Globals{Ctx: ctx, Logger: logger, Stdout: os.Stdout}, &cli)
	stop()
	if err != nil {
		logger.Error().Err(err).Msg("operation failed")
		os.Exit(1)
	}
}
