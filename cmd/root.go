// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/logging"
	"github.com/nibzard/tasklist-go/internal/notify"
	"github.com/nibzard/tasklist-go/internal/tasklist"
	"github.com/nibzard/tasklist-go/internal/todo"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output formats for render and replay.
const (
	formatText = "text"
	formatHTML = "html"
)

// streams are the standard streams a command reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func run(ctx context.Context, args []string, st streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(st.err)
	fs.Usage = func() {
		printUsage(fs, st.err)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, st.out)
		return nil
	}
	if *showVersion {
		return versionCommand(st.out)
	}

	// Determine the subcommand; "tui" is the default.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs, st)
	case "render":
		return renderCommand(cfg, remainingArgs, st)
	case "replay":
		return replayCommand(ctx, cfg, remainingArgs, st)
	case "sample":
		return sampleCommand(remainingArgs, st)
	case "doctor":
		return doctorCommand(cfg, remainingArgs, st)
	case "config":
		return configCommand(cfg, remainingArgs, st)
	case "version":
		return versionCommand(st.out)
	case "help":
		printUsage(fs, st.out)
		return nil
	default:
		fmt.Fprintf(st.err, "Unknown command: %s\n", subcommand)
		printUsage(fs, st.err)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand launches the interactive task list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, st streams) error {
	fs := flag.NewFlagSet("tasklist tui", flag.ContinueOnError)
	fs.SetOutput(st.err)
	addSeedFlags(fs, cfg)
	fs.BoolVar(&cfg.UI.Mouse, "mouse", cfg.UI.Mouse, "Enable mouse support")
	fs.BoolVar(&cfg.UI.AltScreen, "alt-screen", cfg.UI.AltScreen, "Use the alternate screen buffer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	resolveSeedPath(cfg)

	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (use 'tasklist render' or 'tasklist replay' instead)")
	}

	// The terminal belongs to the UI, so logs go to a file.
	session, err := openSessionLog(cfg)
	if err != nil {
		return err
	}
	defer session.Close()
	logger := newLogger(cfg, session.Writer())
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	ticks := ui.NewTickScheduler()
	presenter := notify.NewPresenter(ticks)
	ctrl := tasklist.New(
		tasklist.WithNotifier(presenter),
		tasklist.WithLogger(logger),
	)
	if err := seedController(ctrl, cfg); err != nil {
		return err
	}

	model := ui.NewModel(ctrl, presenter, ticks, ui.WithLogger(logger))
	logger.Info("Starting terminal UI", "session", session.SessionID, "tasks", len(ctrl.Tasks()))
	runOpts := ui.RunOptions{Mouse: cfg.UI.Mouse, AltScreen: cfg.UI.AltScreen}
	if runOpts.Mouse && !runOpts.MouseEnabled() {
		logger.Warn("Mouse support needs the alternate screen; using keyboard only")
	}
	if err := ui.Run(ctx, model, runOpts); err != nil {
		logger.Error("Terminal UI failed", "err", err)
		return err
	}
	logger.Info("Terminal UI closed", "tasks", len(ctrl.Tasks()))
	return nil
}

// renderCommand prints a one-shot render of the initial task list.
func renderCommand(cfg *config.Config, args []string, st streams) error {
	fs := flag.NewFlagSet("tasklist render", flag.ContinueOnError)
	fs.SetOutput(st.err)
	format := fs.String("format", formatText, "Output format (text|html)")
	addSeedFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := checkFormat(*format); err != nil {
		return err
	}
	resolveSeedPath(cfg)

	logger := newLogger(cfg, st.err)
	ctrl := tasklist.New(tasklist.WithLogger(logger))
	if err := seedController(ctrl, cfg); err != nil {
		return err
	}
	return writeRender(st.out, *format, ctrl.Snapshot(), nil)
}

// sampleCommand prints the built-in sample tasks as a seed document.
func sampleCommand(args []string, st streams) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	data, err := todo.SampleSeedFile().Marshal()
	if err != nil {
		return err
	}
	_, err = st.out.Write(data)
	return err
}

// configCommand prints the example configuration, or the effective one
// with the source of every value.
func configCommand(cfg *config.Config, args []string, st streams) error {
	fs := flag.NewFlagSet("tasklist config", flag.ContinueOnError)
	fs.SetOutput(st.err)
	effective := fs.Bool("effective", false, "Print the effective configuration and where each value came from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !*effective {
		_, err := io.WriteString(st.out, config.ExampleConfig())
		return err
	}

	encoded, err := cfg.Encode()
	if err != nil {
		return err
	}
	fmt.Fprint(st.out, encoded)
	fmt.Fprintln(st.out)
	fmt.Fprintln(st.out, "# Sources:")
	for _, key := range config.Keys() {
		fmt.Fprintf(st.out, "#   %-15s %s\n", key, cfg.SourceOf(key))
	}
	if cfg.ConfigFile != "" {
		fmt.Fprintf(st.out, "# Config file: %s\n", cfg.ConfigFile)
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintf(st.out, "# Warning: %s\n", w)
	}
	return nil
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasklist version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasklist - A small interactive task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Launch the terminal UI (default command)")
	fmt.Fprintln(w, "  render              Print the initial task list once")
	fmt.Fprintln(w, "  replay FILE|-       Run a script of task commands and print the result")
	fmt.Fprintln(w, "  sample              Print the sample tasks as a seed file")
	fmt.Fprintln(w, "  doctor              Check config and seed file validity")
	fmt.Fprintln(w, "  config              Print an example config file")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tui Options:")
	fmt.Fprintln(w, "  -sample, -seed FILE, -mouse, -alt-screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text|html) (default \"text\")")
	fmt.Fprintln(w, "  -sample, -seed FILE")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replay Options:")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text|html) (default \"text\")")
	fmt.Fprintln(w, "  -notifications")
	fmt.Fprintln(w, "        Print notifications as they are raised (default true)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Replay Script:")
	fmt.Fprintln(w, "  add <text>          Add a task")
	fmt.Fprintln(w, "  toggle <id>         Toggle a task")
	fmt.Fprintln(w, "  delete <id>         Delete a task")
	fmt.Fprintln(w, "  clear               Clear completed tasks")
	fmt.Fprintln(w, "  wait <duration>     Advance the clock (e.g. 500ms, 3s)")
	fmt.Fprintln(w, "  render              Print the current list")
	fmt.Fprintln(w, "  # comment")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -effective")
	fmt.Fprintln(w, "        Print the effective configuration and value sources")
}

// addSeedFlags registers the initial-task flags on fs, bound to cfg.
func addSeedFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "Seed file with initial tasks (JSON)")
	fs.BoolVar(&cfg.SampleTasks, "sample", cfg.SampleTasks, "Start with the sample tasks")
}

// resolveSeedPath expands a seed path given on a subcommand and makes it
// absolute.
func resolveSeedPath(cfg *config.Config) {
	cfg.SeedFile = config.ExpandPath(cfg.SeedFile)
	if cfg.SeedFile != "" && !filepath.IsAbs(cfg.SeedFile) {
		cfg.SeedFile = filepath.Join(cfg.ProjectRoot, cfg.SeedFile)
	}
}

// seedController loads the configured initial tasks into ctrl. Seed file
// tasks come first, then the sample tasks.
func seedController(ctrl *tasklist.Controller, cfg *config.Config) error {
	var tasks []todo.SeedTask
	if cfg.SeedFile != "" {
		seed, err := todo.LoadSeed(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("loading seed file: %w", err)
		}
		tasks = append(tasks, seed.Tasks...)
	}
	if cfg.SampleTasks {
		tasks = append(tasks, todo.SampleTasks()...)
	}
	if len(tasks) == 0 {
		return nil
	}
	return ctrl.Seed(tasks)
}

func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	return logging.New(w, logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller))
}

func openSessionLog(cfg *config.Config) (*logging.SessionLog, error) {
	if cfg.LogFile != "" {
		return logging.OpenFile(cfg.LogFile)
	}
	return logging.OpenSessionLog(cfg.LogDir, cfg.ProjectRoot)
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatHTML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected text|html)", format)
	}
}

func writeRender(w io.Writer, format string, snap tasklist.Snapshot, toasts []notify.Toast) error {
	if format == formatHTML {
		return ui.RenderHTML(w, snap, toasts)
	}
	if err := ui.RenderText(w, snap); err != nil {
		return err
	}
	if len(toasts) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notifications:")
	return ui.RenderToastsText(w, toasts)
}
