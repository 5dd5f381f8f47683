// Command vertexgen writes the shader-side declarations of the vertex
// record from its Go attribute table.
//
// Usage:
//
//	vertexgen -wgsl shaders/vertex_input.wgsl -metal shaders/vertex_types.h
//	vertexgen -config vertexgen.toml -check
//	vertexgen -version
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gogpu/vertex"
)

// errStale is returned in -check mode when a generated file is outdated.
var errStale = errors.New("generated files are out of date")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "vertexgen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vertexgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  = fs.String("config", "", "TOML config file")
		wgslPath    = fs.String("wgsl", "", "output path of the WGSL VertexInput declaration")
		metalPath   = fs.String("metal", "", "output path of the Metal/C header")
		wgslStruct  = fs.String("wgsl-struct", "", "name of the WGSL vertex input struct (the bundled shader reads VertexInput)")
		metalStruct = fs.String("metal-struct", "", "name of the Metal/C vertex struct")
		check       = fs.Bool("check", false, "report stale files instead of writing them")
		verbose     = fs.Bool("v", false, "verbose logging")
		version     = fs.Bool("version", false, "print the version and exit")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *version {
		fmt.Fprintf(stdout, "vertexgen %s\n", vertex.Version)
		return nil
	}

	vertex.SetLogger(newLogger(stderr, *verbose))
	logger := vertex.Logger()

	cfg := Config{}
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.override(*wgslPath, *metalPath, *wgslStruct, *metalStruct)
	if cfg.WGSL == "" && cfg.Metal == "" {
		return errors.New("nothing to generate: set -wgsl, -metal or a config file")
	}

	if err := vertex.CheckHostLayout(); err != nil {
		return err
	}

	outputs := cfg.outputs(vertex.Attributes())
	stale := 0
	for _, out := range outputs {
		if *check {
			ok, err := upToDate(out.path, out.content)
			if err != nil {
				return err
			}
			if !ok {
				logger.Warn("stale", "path", out.path)
				stale++
			}
			continue
		}
		changed, err := writeIfChanged(out.path, out.content)
		if err != nil {
			return err
		}
		if changed {
			logger.Info("wrote", "path", out.path, "bytes", len(out.content))
		} else {
			logger.Debug("unchanged", "path", out.path)
		}
	}
	if stale > 0 {
		return fmt.Errorf("%w: %d of %d", errStale, stale, len(outputs))
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "vertexgen",
	})
	l.SetLevel(log.InfoLevel)
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return slog.New(l)
}
