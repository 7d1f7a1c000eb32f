package synth

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/marcioaug/Refazer-sub001/internal"
	"github.com/marcioaug/Refazer-sub001/internal/gosource"
	tt "github.com/marcioaug/Refazer-sub001/internal/types"
	"github.com/marcioaug/Refazer-sub001/scanner"
)

var sourceExtensions = []string{".go", ".gno"}

type LocateEngine interface {
	Locate(program *internal.Program, filename string) ([]tt.Location, error)
}

type Processor func(LocateEngine, *internal.Program, string) ([]tt.Location, error)

// New creates an engine from a configuration file. A missing file yields
// the default configuration.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	config, err := internal.LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return internal.NewEngine(config, logger)
}

// Learn loads an example set and learns a program from it.
func Learn(engine *internal.Engine, examplesPath string) (*internal.Program, error) {
	set, err := internal.LoadExampleSet(examplesPath)
	if err != nil {
		return nil, err
	}
	return engine.LearnSet(set)
}

func ProcessFile(engine LocateEngine, program *internal.Program, filePath string) ([]tt.Location, error) {
	return engine.Locate(program, filePath)
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LocateEngine,
	program *internal.Program,
	paths []string,
	processor Processor,
) ([]tt.Location, error) {
	var allLocations []tt.Location
	for _, path := range paths {
		locations, err := ProcessPath(ctx, logger, engine, program, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return allLocations, err
		}
		allLocations = append(allLocations, locations...)
	}

	return allLocations, nil
}

// ProcessPath applies the program to a file, or to every Go and Gno file
// under a directory, leaving out hidden, vendor and testdata directories.
// Directory files are processed in parallel; files
// that fail are logged and skipped. On cancellation the locations found
// so far are returned along with the context's error.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LocateEngine,
	program *internal.Program,
	path string,
	processor Processor,
) ([]tt.Location, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !gosource.SupportedFile(path) {
			return nil, nil
		}
		return processor(engine, program, path)
	}

	files, err := scanner.New(path, sourceExtensions...).Paths()
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		locations = []tt.Location{}
	)

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())

	var ctxErr error
loop:
	for _, filePath := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break loop
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileLocations, err := processor(engine, program, fp)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
				}
			} else {
				mu.Lock()
				locations = append(locations, fileLocations...)
				mu.Unlock()
			}
			_ = bar.Add(1)
		}(filePath)
	}
	wg.Wait()
	_ = bar.Finish()

	sortLocations(locations)
	return locations, ctxErr
}

func sortLocations(locations []tt.Location) {
	sort.SliceStable(locations, func(i, j int) bool {
		a, b := locations[i], locations[j]
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		return a.Start.Column < b.Start.Column
	})
}
