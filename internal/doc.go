// Package internal ties the synthesis core to Go and Gno source files.
//
// It reads the configuration and example sets, parses files into token
// sequences, learns programs and applies them to new files.
//
// Key components:
//
// Engine: Learns a Program from labeled examples, using the configured
// decomposition strategy and predicate kinds, and locates the statements a
// Program selects in other files.
//
// Program: The learned predicates, best first, plus an optional SubStr
// expression that extracts a region from each selected statement.
//
// Cache: Parsed documents keyed by file name and invalidated by the MD5 of
// their content. Each Engine owns one.
//
// SourceCode: A simple structure to represent the content of a source file as a collection of lines.
//
// Usage:
//
//	engine, err := internal.NewEngine(internal.DefaultConfig(), logger)
//	if err != nil {
//	    // handle error
//	}
//
//	set, err := internal.LoadExampleSet("examples.yaml")
//	if err != nil {
//	    // handle error
//	}
//
//	program, err := engine.LearnSet(set)
//	if err != nil {
//	    // handle error
//	}
//
//	locations, err := engine.Locate(program, "path/to/file.go")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, loc := range locations {
//	    fmt.Printf("%s at %s\n", loc.Message, loc.Start)
//	}
//
// This package is intended for internal use and should not be imported by
// external packages.
package internal
