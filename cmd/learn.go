package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcioaug/Refazer-sub001/internal"
	"github.com/marcioaug/Refazer-sub001/synth"
)

var (
	learnJsonOutput bool
	learnOutPath    string
)

var learnCmd = &cobra.Command{
	Use:   "learn <examples.yaml>",
	Short: "Learn a program from an example set and print it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := synth.New(cfgFile, logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		program, err := learnWithTimeout(ctx, engine, args[0])
		if err != nil {
			logger.Error("Error learning program", zap.String("examples", args[0]), zap.Error(err))
			os.Exit(1)
		}

		if err := writeOutput(learnOutPath, func(w io.Writer) error {
			return printProgram(w, program, learnJsonOutput)
		}); err != nil {
			logger.Error("Error writing program", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	learnCmd.Flags().BoolVar(&learnJsonOutput, "json", false, "Output the program in JSON format")
	learnCmd.Flags().StringVarP(&learnOutPath, "output", "o", "", "Output path")
}

// learnWithTimeout runs learning in the background; the core has no
// cancellation of its own.
func learnWithTimeout(ctx context.Context, engine *internal.Engine, examplesPath string) (*internal.Program, error) {
	type result struct {
		program *internal.Program
		err     error
	}
	done := make(chan result, 1)
	go func() {
		program, err := synth.Learn(engine, examplesPath)
		done <- result{program, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("learning timed out: %w", ctx.Err())
	case r := <-done:
		return r.program, r.err
	}
}

func printProgram(w io.Writer, program *internal.Program, isJson bool) error {
	summary := program.Summary()
	if isJson {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	if len(summary.Predicates) == 0 {
		_, err := fmt.Fprintln(w, "no predicate generalizes the examples")
		return err
	}
	fmt.Fprintln(w, "predicates:")
	for i, p := range summary.Predicates {
		fmt.Fprintf(w, "  %d. %s\n", i+1, p)
	}
	if summary.Extract != "" {
		fmt.Fprintf(w, "extract:\n  %s\n", summary.Extract)
	}
	return nil
}

// writeOutput writes to path, or to stdout when path is empty.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}
