package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcioaug/Refazer-sub001/internal"
	tt "github.com/marcioaug/Refazer-sub001/internal/types"
	"github.com/marcioaug/Refazer-sub001/synth"
)

var (
	locateJsonOutput bool
	locateOutPath    string
)

var locateCmd = &cobra.Command{
	Use:   "locate <examples.yaml> <paths...>",
	Short: "Learn from an example set and locate matching regions",
	Args:  cobra.MinimumNArgs(2),
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
		if program.Empty() {
			logger.Warn("No predicate generalizes the examples", zap.String("examples", args[0]))
			return
		}

		runLocateProcess(ctx, logger, engine, program, args[1:], locateJsonOutput, locateOutPath)
	},
}

func init() {
	locateCmd.Flags().BoolVar(&locateJsonOutput, "json", false, "Output locations in JSON format")
	locateCmd.Flags().StringVarP(&locateOutPath, "output", "o", "", "Output path (when using JSON)")
}

func runLocateProcess(ctx context.Context, logger *zap.Logger, engine synth.LocateEngine, program *internal.Program, paths []string, isJson bool, jsonOutput string) {
	locations, err := synth.ProcessFiles(ctx, logger, engine, program, paths, synth.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	if isJson {
		if err := writeOutput(jsonOutput, func(w io.Writer) error {
			return printLocationsJSON(w, locations)
		}); err != nil {
			logger.Error("Error writing JSON output", zap.Error(err))
			os.Exit(1)
		}
		return
	}
	printLocations(os.Stdout, logger, locations)
}

func groupByFile(locations []tt.Location) ([]string, map[string][]tt.Location) {
	byFile := make(map[string][]tt.Location)
	for _, loc := range locations {
		byFile[loc.Filename] = append(byFile[loc.Filename], loc)
	}

	sortedFiles := make([]string, 0, len(byFile))
	for filename := range byFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)
	return sortedFiles, byFile
}

func printLocations(w io.Writer, logger *zap.Logger, locations []tt.Location) {
	sortedFiles, byFile := groupByFile(locations)
	for _, filename := range sortedFiles {
		sourceCode, err := internal.ReadSourceCode(filename)
		if err != nil {
			logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
			continue
		}
		fmt.Fprintln(w, internal.FormatLocationsWithArrows(byFile[filename], sourceCode))
	}
}

func printLocationsJSON(w io.Writer, locations []tt.Location) error {
	_, byFile := groupByFile(locations)
	d, err := json.Marshal(byFile)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(d))
	return err
}
