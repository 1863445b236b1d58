package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/notify"
	"github.com/nibzard/tasklist-go/internal/tasklist"
)

// replayStart is the virtual clock origin of every replay, so output is
// reproducible.
var replayStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// replayStep is one parsed script line.
type replayStep struct {
	line int
	op   string
	arg  string
	id   int
	wait time.Duration
}

// replayCommand runs a script of task commands against a headless
// controller on a virtual clock.
func replayCommand(ctx context.Context, cfg *config.Config, args []string, st streams) error {
	fs := flag.NewFlagSet("tasklist replay", flag.ContinueOnError)
	fs.SetOutput(st.err)
	format := fs.String("format", formatText, "Output format (text|html)")
	notifications := fs.Bool("notifications", true, "Print notifications as they are raised")
	addSeedFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}
	if len(fs.Args()) != 1 {
		return fmt.Errorf("replay requires exactly one script path (or - for stdin)")
	}
	resolveSeedPath(cfg)

	script, name, err := openScript(fs.Arg(0), st.in)
	if err != nil {
		return err
	}
	defer script.Close()

	steps, err := parseScript(script)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	logger := newLogger(cfg, st.err)
	clock := notify.NewManualScheduler(replayStart)
	presenter := notify.NewPresenter(clock)
	if *notifications {
		presenter.Subscribe(func(t notify.Toast) {
			fmt.Fprintf(st.out, "notification: [%s] %s\n", t.Category, t.Message)
		})
	}
	ctrl := tasklist.New(
		tasklist.WithNotifier(presenter),
		tasklist.WithClock(clock.Now),
		tasklist.WithLogger(logger),
	)
	if err := seedController(ctrl, cfg); err != nil {
		return err
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		logger.Debug("Replay step", "line", step.line, "op", step.op)
		switch step.op {
		case "add":
			// Rejections are reported through notifications.
			_, _ = ctrl.AddTask(step.arg)
		case "toggle":
			if !ctrl.ToggleTask(step.id) {
				logger.Warn("No such task", "line", step.line, "id", step.id)
			}
		case "delete":
			if !ctrl.DeleteTask(step.id) {
				logger.Warn("No such task", "line", step.line, "id", step.id)
			}
		case "clear":
			ctrl.ClearCompleted()
		case "wait":
			clock.Advance(step.wait)
		case "render":
			if err := writeRender(st.out, *format, ctrl.Snapshot(), presenter.Toasts()); err != nil {
				return err
			}
			fmt.Fprintln(st.out)
		}
	}

	return writeRender(st.out, *format, ctrl.Snapshot(), presenter.Toasts())
}

func openScript(path string, stdin io.Reader) (io.ReadCloser, string, error) {
	if path == "-" {
		return io.NopCloser(stdin), "<stdin>", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open script: %w", err)
	}
	return f, path, nil
}

// parseScript reads replay commands, one per line. Blank lines and lines
// starting with # are skipped. All problems are reported with their line
// numbers.
func parseScript(r io.Reader) ([]replayStep, error) {
	var (
		steps []replayStep
		errs  []error
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		step, err := parseStep(lineNo, line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return steps, nil
}

// splitCommand splits line at its first whitespace character. rest keeps
// that character.
func splitCommand(line string) (op, rest string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i:]
}

func parseStep(lineNo int, line string) (replayStep, error) {
	op, rest := splitCommand(line)
	arg := rest
	op = strings.ToLower(op)
	step := replayStep{line: lineNo, op: op}

	switch op {
	case "add":
		// Everything after the separator is input text, validated later.
		if r, size := utf8.DecodeRuneInString(rest); unicode.IsSpace(r) {
			step.arg = rest[size:]
		}
	case "toggle", "delete":
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return step, fmt.Errorf("%s: invalid task id %q", op, strings.TrimSpace(arg))
		}
		step.id = id
	case "wait":
		d, err := time.ParseDuration(strings.TrimSpace(arg))
		if err != nil {
			return step, fmt.Errorf("wait: %w", err)
		}
		if d < 0 {
			return step, fmt.Errorf("wait: negative duration %s", d)
		}
		step.wait = d
	case "clear", "render":
		if strings.TrimSpace(arg) != "" {
			return step, fmt.Errorf("%s takes no arguments", op)
		}
	default:
		return step, fmt.Errorf("unknown command %q", op)
	}
	return step, nil
}
