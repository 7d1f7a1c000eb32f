package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	tt "github.com/marcioaug/Refazer-sub001/internal/types"
)

const DefaultExamplesFile = "examples.yaml"

// ExampleSpec locates one example in a source file. The region is given
// either by a snippet, whose first occurrence is used, or by a byte range
// [Start, End). Without either the whole file is the example.
type ExampleSpec struct {
	File    string `yaml:"file" json:"file"`
	Snippet string `yaml:"snippet,omitempty" json:"snippet,omitempty"`
	Start   *int   `yaml:"start,omitempty" json:"start,omitempty"`
	End     *int   `yaml:"end,omitempty" json:"end,omitempty"`
	Label   bool   `yaml:"label" json:"label"`
}

type ExampleSet struct {
	Name     string        `yaml:"name"`
	Examples []ExampleSpec `yaml:"examples"`
}

// LoadExampleSet reads an example set. Relative file names are resolved
// against the directory of the set itself.
func LoadExampleSet(path string) (ExampleSet, error) {
	var set ExampleSet

	f, err := os.Open(path)
	if err != nil {
		return set, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&set); err != nil {
		return set, fmt.Errorf("error parsing example set %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range set.Examples {
		spec := &set.Examples[i]
		if spec.File == "" {
			return set, fmt.Errorf("example %d in %s has no file", i, path)
		}
		if !filepath.IsAbs(spec.File) {
			spec.File = filepath.Join(dir, spec.File)
		}
	}
	return set, nil
}

// Examples resolves specs into learning examples over parsed documents.
func (e *Engine) Examples(specs []ExampleSpec) ([]tt.Example, error) {
	out := make([]tt.Example, 0, len(specs))
	for i, spec := range specs {
		doc, err := e.cache.Load(spec.File)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}

		ex := tt.Example{Context: doc, Label: spec.Label}
		switch {
		case spec.Snippet != "":
			r, err := doc.Snippet(spec.Snippet)
			if err != nil {
				return nil, fmt.Errorf("example %d: %w", i, err)
			}
			ex.Region = &r
		case spec.Start != nil && spec.End != nil:
			r, err := doc.RegionOf(*spec.Start, *spec.End)
			if err != nil {
				return nil, fmt.Errorf("example %d: %w", i, err)
			}
			ex.Region = &r
		case spec.Start != nil || spec.End != nil:
			return nil, fmt.Errorf("example %d: start and end must be given together", i)
		}
		out = append(out, ex)
	}
	return out, nil
}
