// Package main is the entry point for the stratagem tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/dshills/stratagem/internal/app"
	"github.com/dshills/stratagem/internal/config"
	"github.com/dshills/stratagem/internal/host"
	"github.com/dshills/stratagem/internal/input/dictionary"
	"github.com/dshills/stratagem/internal/input/matcher"
	"github.com/dshills/stratagem/internal/logging"
	"github.com/dshills/stratagem/internal/sink"
	"github.com/dshills/stratagem/internal/validator"
)

var (
	okColor  = color.New(color.FgGreen)
	errColor = color.New(color.FgRed)
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// common holds the flags every subcommand accepts.
type common struct {
	dataPath   string
	scriptDir  string
	configPath string
	logLevel   string
	device     string
	dryRun     bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.dataPath, "data", "", "Stratagem table (JSON or YAML); default is the built-in table")
	fs.StringVar(&c.scriptDir, "scripts", "", "Directory of Lua scripts declaring extra stratagems")
	fs.StringVar(&c.configPath, "config", "", "Settings file (TOML); default is the user config directory")
	fs.StringVar(&c.configPath, "c", "", "Settings file (shorthand)")
	fs.StringVar(&c.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.StringVar(&c.device, "device", sink.DefaultDeviceName, "Virtual keyboard device name")
	fs.BoolVar(&c.dryRun, "dry-run", false, "Record key events instead of typing them")
}

func (c *common) options(stderr io.Writer) (app.Options, *sink.Recorder, error) {
	level, ok := logging.ParseLevel(c.logLevel)
	if !ok {
		return app.Options{}, nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.logLevel)
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = stderr

	settings := c.configPath
	if settings == "" {
		if p, err := config.DefaultPath(); err == nil {
			settings = p
		}
	}

	opts := app.Options{
		DataPath:     c.dataPath,
		ScriptDir:    c.scriptDir,
		SettingsPath: settings,
		DeviceName:   c.device,
		Logger:       logging.New(cfg),
	}

	var rec *sink.Recorder
	if c.dryRun {
		rec = sink.NewRecorder()
		opts.Sink = rec
		opts.Sleeper = func(context.Context, time.Duration) error { return nil }
	}
	return opts, rec, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "run":
		return runHost(rest, stdin, stdout, stderr)
	case "fire":
		return runFire(rest, stdout, stderr)
	case "list":
		return runList(rest, stdout, stderr)
	case "check":
		return runCheck(rest, stdout, stderr)
	case "validate":
		return runValidate(rest, stderr)
	case "version", "-version", "--version", "-v":
		fmt.Fprintf(stdout, "stratagem %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	case "help", "-help", "--help", "-h":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmd)
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "stratagem - type stratagem codes on a virtual keyboard\n\n")
	fmt.Fprintf(w, "Usage: stratagem <command> [options] [args]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  run                 Serve the line protocol on stdin/stdout\n")
	fmt.Fprintf(w, "  fire KEY...         Type the named stratagems\n")
	fmt.Fprintf(w, "  list                List known stratagems\n")
	fmt.Fprintf(w, "  check               Validate the stratagem table, scripts and settings\n")
	fmt.Fprintf(w, "  validate            Interactive terminal sequence checker\n")
	fmt.Fprintf(w, "  version             Show version information\n")
	fmt.Fprintf(w, "\nRun 'stratagem <command> -h' for command options.\n")
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := &common{}
	c.register(fs)
	return fs, c
}

func runHost(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs, c := newFlagSet("run", stderr)
	watch := fs.Bool("watch", true, "Reload settings and data files when they change")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts, _, err := c.options(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	opts.Watch = *watch

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := host.NewServer(application, stdout, host.WithLogger(opts.Logger.WithComponent("host")))
	if err := server.Serve(ctx, stdin); err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func runFire(args []string, stdout, stderr io.Writer) int {
	fs, c := newFlagSet("fire", stderr)
	hero := fs.Bool("hero", false, "Assume the stratagem menu is already open")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(stderr, "Error: fire needs at least one stratagem key\n")
		return 2
	}

	opts, rec, err := c.options(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()
	application.SetHeroMode(*hero)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := 0
	for _, k := range fs.Args() {
		if _, err := application.Fire(ctx, k); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			code = 1
			continue
		}
		if rec != nil {
			fmt.Fprintf(stdout, "%s: %s\n", k, rec)
			rec.Reset()
		}
	}
	return code
}

func runList(args []string, stdout, stderr io.Writer) int {
	fs, c := newFlagSet("list", stderr)
	asJSON := fs.Bool("json", false, "Write the table as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	dict, ok := loadDictionary(c, stderr)
	if !ok {
		return 1
	}

	if *asJSON {
		if err := dictionary.Encode(stdout, dict); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	for _, e := range dict.Entries() {
		fmt.Fprintf(stdout, "%-28s %-24s %s\n", e.Key, e.Sequence.Arrows(), e.DisplayName())
	}
	return 0
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs, c := newFlagSet("check", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts, _, err := c.options(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	opts.Sink = sink.NewRecorder()
	opts.Logger = logging.Nop()

	code := 0
	if opts.SettingsPath != "" {
		s := config.NewStore()
		if err := s.LoadFile(opts.SettingsPath); err != nil {
			errColor.Fprintf(stdout, "settings: %v\n", err)
			code = 1
		}
	}

	application, err := app.New(opts)
	if err != nil {
		errColor.Fprintf(stdout, "%v\n", err)
		return 1
	}
	defer application.Close()

	if err := application.Reload(); err != nil {
		errColor.Fprintf(stdout, "%v\n", err)
		code = 1
	}
	okColor.Fprintf(stdout, "%d stratagems OK\n", application.Dictionary().Len())
	return code
}

func runValidate(args []string, stderr io.Writer) int {
	fs, c := newFlagSet("validate", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(stderr, "Error: validate needs an interactive terminal\n")
		return 1
	}

	dict, ok := loadDictionary(c, stderr)
	if !ok {
		return 1
	}
	if err := validator.New(matcher.Static{Dict: dict}).Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadDictionary assembles the dictionary the way the run command does,
// without opening a device.
func loadDictionary(c *common, stderr io.Writer) (*dictionary.Dictionary, bool) {
	c.dryRun = true
	opts, _, err := c.options(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, false
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, false
	}
	defer application.Close()
	return application.Dictionary(), true
}
