package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/tasklist-go/internal/config"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// doctorCommand checks config and seed file validity.
func doctorCommand(cfg *config.Config, args []string, st streams) error {
	fs := flag.NewFlagSet("tasklist doctor", flag.ContinueOnError)
	fs.SetOutput(st.err)
	verbose := fs.Bool("v", false, "Verbose output")
	addSeedFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(fs.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	resolveSeedPath(cfg)

	out := st.out
	fmt.Fprintln(out, "Tasklist Doctor")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)

	allOK := true

	// Check config
	fmt.Fprintln(out, "Config:")
	if cfg.ConfigFile != "" {
		fmt.Fprintf(out, "  Config file: %s\n", cfg.ConfigFile)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(out, "  ✅ OK")
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintf(out, "  ⚠️  %s\n", w)
	}
	if *verbose {
		for _, key := range config.Keys() {
			fmt.Fprintf(out, "  %-15s %s\n", key, cfg.SourceOf(key))
		}
	}
	fmt.Fprintln(out)

	// Check seed file
	if cfg.SeedFile == "" {
		fmt.Fprintln(out, "Seed file: (none)")
	} else {
		fmt.Fprintf(out, "Seed file: %s\n", cfg.SeedFile)
		if !checkSeedFile(out, cfg.SeedFile, *verbose) {
			allOK = false
		}
	}
	fmt.Fprintln(out)

	// Check log directory
	fmt.Fprintf(out, "Log dir: %s\n", cfg.LogDir)
	if info, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "  ⚠️  Not found (will be created when the terminal UI starts)")
		} else {
			fmt.Fprintf(out, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(out, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(out, "  ✅ OK")
	}
	fmt.Fprintln(out)

	if !allOK {
		fmt.Fprintln(out, "❌ Some checks failed")
		return fmt.Errorf("doctor checks failed")
	}
	fmt.Fprintln(out, "✅ All checks passed")
	return nil
}

func checkSeedFile(out io.Writer, path string, verbose bool) bool {
	seed, err := todo.LoadSeed(path)
	if err != nil {
		var schemaErr *todo.SchemaError
		if errors.As(err, &schemaErr) {
			fmt.Fprintln(out, "  ❌ Validation failed:")
			for _, e := range schemaErr.Errors {
				fmt.Fprintf(out, "     - %v\n", e)
			}
			return false
		}
		fmt.Fprintf(out, "  ❌ %v\n", err)
		return false
	}
	fmt.Fprintln(out, "  ✅ Valid")
	if verbose {
		fmt.Fprintf(out, "  Tasks: %d\n", len(seed.Tasks))
		for _, t := range seed.Tasks {
			fmt.Fprintf(out, "    - %s %s\n", checkMark(t.Completed), t.Text)
		}
	}
	return true
}

func checkMark(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
