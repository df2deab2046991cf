package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/dccapacity/dccapacity/internal/capacity"
	"github.com/dccapacity/dccapacity/internal/config"
	"github.com/dccapacity/dccapacity/internal/report"
	"github.com/dccapacity/dccapacity/internal/topology"
)

const usageText = `Usage: %s [options]
Options:
  -h, --help            Show this help message
  -f, --file FILE       Read input from file (.yaml/.yml for YAML topologies)
  -d, --detailed        Show detailed results
  -i, --interactive     Interactive mode (default)
  --config PATH         Load settings from a YAML config file
  --format NAME         Output format: table | detailed | json | prometheus
  --variant NAME        Reduction: detailed | presence | simple
  --generate MxN        Auto-generate an M-group by N-machine topology
  --emit                With --generate, print the topology as input and exit
  --watch               With --file, recompute whenever the file changes

Example input format:
  3 4                 (3 groups, 4 machines per group)
  A1 B1 C1 D1        (Group 1 machines)
  A2 B2 C2 D2        (Group 2 machines)
  A3 B3 C3 D3        (Group 3 machines)

`

// options holds the parsed command line.
type options struct {
	help     bool
	file     string
	fileMode bool
	detailed bool
	config   string
	format   string
	variant  string
	generate string
	emit     bool
	watch    bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run executes one invocation. args includes the program name.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	name := "dccapacity"
	if len(args) > 0 {
		name = args[0]
		args = args[1:]
	}

	opts, err := parseFlags(name, args, stderr)
	if err != nil {
		return err
	}
	if opts.help {
		fmt.Fprintf(stdout, usageText, name)
		return nil
	}

	cfg := config.Default()
	if opts.config != "" {
		if cfg, err = config.Load(opts.config); err != nil {
			return err
		}
	}

	logger := newLogger(stderr, cfg.Log)
	slog.SetDefault(logger)
	slog.Info("dccapacity starting", "config", opts.config)

	params := cfg.Params()
	if opts.variant != "" {
		if params.Variant, err = capacity.ParseVariant(opts.variant); err != nil {
			return err
		}
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	if opts.format != "" {
		if format, err = report.ParseFormat(opts.format); err != nil {
			return err
		}
	}
	if opts.detailed {
		format = report.FormatDetailed
	}

	if opts.emit && opts.generate == "" {
		return errors.New("--emit requires --generate")
	}
	if opts.watch && (!opts.fileMode || opts.generate != "") {
		return errors.New("--watch requires --file")
	}

	load := func() (topology.Topology, error) {
		switch {
		case opts.generate != "":
			m, n, err := parseDims(opts.generate)
			if err != nil {
				return topology.Topology{}, err
			}
			if err := params.Limits.Check(m, n); err != nil {
				return topology.Topology{}, err
			}
			return topology.Generate(m, n), nil
		case opts.fileMode:
			return topology.ReadFile(opts.file)
		default:
			return topology.Prompt(stdin, stdout)
		}
	}

	if opts.emit {
		t, err := load()
		if err != nil {
			return err
		}
		if err := t.Validate(params.Limits); err != nil {
			return err
		}
		return topology.Encode(stdout, t)
	}

	compute := func() error {
		if opts.fileMode && opts.generate == "" {
			fmt.Fprintln(stdout, "Reading from file:", opts.file)
		}
		t, err := load()
		if err != nil {
			return err
		}
		slog.Info("topology loaded", "groups", t.Groups, "machines_per_group", t.MachinesPerGroup)

		res, err := capacity.Estimate(t, params)
		if err != nil {
			return err
		}
		slog.Info("estimate complete", "variant", params.Variant, "total_rps", res.TotalRPS)
		return report.Write(stdout, format, res)
	}

	if err := compute(); err != nil {
		if !opts.watch {
			return err
		}
		slog.Error("estimate failed, waiting for changes", "file", opts.file, "err", err)
	}
	if !opts.watch {
		return nil
	}

	return config.Watch(ctx, opts.file, func() {
		if err := compute(); err != nil {
			slog.Error("estimate failed, keeping previous result", "file", opts.file, "err", err)
		}
	})
}

// parseFlags accepts both the short and long spelling of each option.
// -f and -i are order-sensitive: the last one given wins.
func parseFlags(name string, args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprintf(stderr, usageText, name) }

	setFile := func(s string) error {
		if s == "" {
			return errors.New("file name is empty")
		}
		opts.file, opts.fileMode = s, true
		return nil
	}
	setInteractive := func(s string) error {
		on, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		if on {
			opts.fileMode = false
		}
		return nil
	}

	for _, n := range []string{"h", "help"} {
		fs.BoolVar(&opts.help, n, false, "show help message")
	}
	for _, n := range []string{"f", "file"} {
		fs.Func(n, "read input from `FILE`", setFile)
	}
	for _, n := range []string{"d", "detailed"} {
		fs.BoolVar(&opts.detailed, n, false, "show detailed results")
	}
	for _, n := range []string{"i", "interactive"} {
		fs.BoolFunc(n, "interactive mode (default)", setInteractive)
	}
	fs.StringVar(&opts.config, "config", "", "path to config file")
	fs.StringVar(&opts.format, "format", "", "output format")
	fs.StringVar(&opts.variant, "variant", "", "capacity reduction variant")
	fs.StringVar(&opts.generate, "generate", "", "auto-generate an `MxN` topology")
	fs.BoolVar(&opts.emit, "emit", false, "print the generated topology and exit")
	fs.BoolVar(&opts.watch, "watch", false, "recompute when the input file changes")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return options{}, fmt.Errorf("unknown option: %s", fs.Arg(0))
	}
	return opts, nil
}

// parseDims parses "MxN" (case-insensitive x) into two integers. Range
// checks are left to topology validation.
func parseDims(s string) (int, int, error) {
	ms, ns, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("--generate %q: want MxN, e.g. 3x4", s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(ms))
	if err != nil {
		return 0, 0, fmt.Errorf("--generate %q: groups: %w", s, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(ns))
	if err != nil {
		return 0, 0, fmt.Errorf("--generate %q: machines: %w", s, err)
	}
	return m, n, nil
}

// newLogger builds the slog logger described by cfg. Logs go to w so that
// stdout carries only the report.
func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
