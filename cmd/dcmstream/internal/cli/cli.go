// Package cli implements the dcmstream command: parse a DICOM stream with
// an optional stop condition and render the elements it emits.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/codeninja55/dcmstream/cmd/dcmstream/internal/build"
	"github.com/codeninja55/dcmstream/cmd/dcmstream/internal/ui"
	"github.com/codeninja55/dcmstream/dicom"
	"github.com/codeninja55/dcmstream/dicom/element"
)

const (
	appName        = "dcmstream"
	appDescription = "Streaming DICOM element parser"
)

// Run parses the command line, drives a Parser to exhaustion or to its
// configured stop condition, and renders every element emitted along the
// way. Returns a non-nil error on any fatal parse or I/O failure; the
// caller is expected to translate that into a non-zero exit code.
func Run(version, commit, date string) error {
	build.SetBuildInfo(version, commit, date)

	cfg := &Config{}
	kong.Parse(cfg,
		kong.Name(appName),
		kong.Description(appDescription),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
			"commit":  commit,
			"date":    date,
		},
	)

	logger := setupLogger(cfg)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	ui.PrintBanner()

	if err := run(cfg, logger, os.Stdout); err != nil {
		logger.Error("parse failed", "error", err)
		return err
	}
	return nil
}

// run drives the parser and is split out from Run so tests can exercise it
// against an in-memory Config and buffer without going through kong/stdout.
func run(cfg *Config, logger *log.Logger, w io.Writer) error {
	src, err := openInput(cfg.Input)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer src.Close()

	state, err := parseState(cfg.State)
	if err != nil {
		return err
	}
	stop, err := cfg.buildStop()
	if err != nil {
		return err
	}

	p := dicom.NewParserBuilder(src).WithState(state).WithStop(stop).Build()

	var rows []ui.Row
	enc := json.NewEncoder(w)

	count := 0
	for {
		raw, err := p.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("at byte %d: %w", p.BytesRead(), err)
		}
		count++

		el, err := element.FromRaw(raw)
		if err != nil {
			logger.Warn("could not decode element value",
				"tag", fmt.Sprintf("(%04X,%04X)", raw.Group(), raw.ElementNumber()),
				"error", err)
			continue
		}

		logger.Debug("emitted element", "tag", el.Tag().String(), "vr", el.VR().String())

		if cfg.Format == "json" {
			if err := enc.Encode(jsonElement(el)); err != nil {
				return fmt.Errorf("encoding element as JSON: %w", err)
			}
			continue
		}
		rows = append(rows, toRow(el))
	}

	if cfg.Format != "json" {
		ui.RenderTable(rows, w)
	}

	logger.Info("parse complete", "elements", count, "bytes_read", p.BytesRead())
	return nil
}

// openInput opens path for reading, treating "-" as stdin per the
// teacher's own convention for file-or-stdin flags.
func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

// toRow projects a decorated element into a table row. Depth comes from
// len(Ancestors) so nested sequence contents visibly indent under their
// parent.
func toRow(el *element.Element) ui.Row {
	return ui.Row{
		Tag:   fmt.Sprintf("(%04X,%04X)", el.Tag().Group, el.Tag().Element),
		VR:    el.VR().String(),
		Name:  displayName(el),
		Depth: len(el.Ancestors()),
		VM:    el.ValueMultiplicity(),
		Value: displayValue(el),
	}
}

// jsonRecord is the newline-delimited JSON shape emitted under
// --format=json: one object per line, flushed as each element arrives,
// rather than a single buffered array, matching the parser's own
// element-at-a-time emission.
type jsonRecord struct {
	Tag        string `json:"tag"`
	VR         string `json:"vr"`
	Name       string `json:"name,omitempty"`
	Depth      int    `json:"depth"`
	VM         string `json:"vm"`
	Value      string `json:"value,omitempty"`
	Structural bool   `json:"structural,omitempty"`
}

func jsonElement(el *element.Element) jsonRecord {
	return jsonRecord{
		Tag:        fmt.Sprintf("(%04X,%04X)", el.Tag().Group, el.Tag().Element),
		VR:         el.VR().String(),
		Name:       el.Name(),
		Depth:      len(el.Ancestors()),
		VM:         el.ValueMultiplicity(),
		Value:      displayValue(el),
		Structural: el.IsStructural(),
	}
}

func displayName(el *element.Element) string {
	if name := el.Name(); name != "" {
		return name
	}
	return el.Tag().String()
}

func displayValue(el *element.Element) string {
	if el.Value() != nil {
		return el.Value().String()
	}
	if el.Length().IsUndefined() {
		return "<undefined length>"
	}
	return ""
}

// setupLogger configures the global logger based on cfg, the same
// structured-leveled-logging convention the teacher's CLI entry point uses.
func setupLogger(cfg *Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	switch cfg.LogLevel {
	case "trace", "debug":
		logger.SetLevel(log.DebugLevel) // log package has no trace level
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	case "fatal":
		logger.SetLevel(log.FatalLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	log.SetDefault(logger)
	return logger
}

// ParseArgs is a convenience function for testing: parses args against a
// fresh Config without touching the process's real os.Args or exiting on
// error.
func ParseArgs(args []string) (*Config, *kong.Context, error) {
	cfg := &Config{}
	parser, err := kong.New(cfg, kong.Name(appName), kong.Description(appDescription))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create parser: %w", err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse arguments: %w", err)
	}
	return cfg, ctx, nil
}
