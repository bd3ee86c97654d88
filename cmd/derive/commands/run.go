package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"martianoff/derive/internal/decl"
	"martianoff/derive/internal/engine"
	"martianoff/derive/internal/lawcheck"
	"martianoff/derive/internal/registry"
	"martianoff/derive/internal/render"
)

var runCmd = &cobra.Command{
	Use:   "run <decls.yaml>",
	Short: "Derive map and traverse for the declarations in a file",
	Long: `Run loads type declarations from a YAML file and derives the
structural map and traverse operations for each, in file order.

Each derived pair is installed and its laws checked before the next
declaration is processed, so later declarations may nest earlier ones.

Examples:
  derive run types.yaml
  derive run -v types.yaml      # Verbose derivation logging`,
	Args: cobra.ExactArgs(1),
	RunE: runDerive,
}

// newLogger builds the CLI logger; verbose switches on the development
// config, otherwise logging is off.
func newLogger() (*zap.Logger, error) {
	if rootVerbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// deriveFile loads a declaration file, derives every declaration in order,
// and hands each result to emit. Derived pairs are installed and marked
// law-checked as it goes.
func deriveFile(path string, emit func(*engine.Derived, *lawcheck.Report) error) error {
	decls, err := decl.LoadFile(path)
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	reg := registry.Default()
	if err := engine.Bootstrap(reg); err != nil {
		return err
	}
	for _, d := range decls {
		if err := reg.RegisterDecl(d); err != nil {
			return err
		}
	}

	e := engine.New(reg, engine.WithLogger(log))
	checker := lawcheck.New(reg, lawcheck.Config{Seed: checkSeed, Samples: checkSamples})
	for _, d := range decls {
		derived, err := e.Derive(d.Name)
		if err != nil {
			return err
		}
		e.Install(derived)
		report, err := checker.CheckAndMark(derived)
		if err != nil {
			return err
		}
		if err := emit(derived, report); err != nil {
			return err
		}
	}
	return nil
}

func runDerive(cmd *cobra.Command, args []string) error {
	first := true
	return deriveFile(args[0], func(d *engine.Derived, r *lawcheck.Report) error {
		if !r.Passed() {
			return fmt.Errorf("%s: %w", d.Decl.Name, r.Err())
		}
		if !first {
			fmt.Println()
		}
		first = false
		fmt.Fprint(os.Stdout, render.Derived(d))
		return nil
	})
}
