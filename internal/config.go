package internal

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marcioaug/Refazer-sub001/internal/dag"
	"github.com/marcioaug/Refazer-sub001/internal/decompose"
	"github.com/marcioaug/Refazer-sub001/internal/predicate"
	tt "github.com/marcioaug/Refazer-sub001/internal/types"
)

const (
	DefaultConfigFile     = ".refazer.yaml"
	DefaultMaxSequenceLen = 256
	DefaultStrategy       = "statement"
)

// Config is the synthesis configuration read from .refazer.yaml.
type Config struct {
	Name              string                   `yaml:"name"`
	Deviation         int                      `yaml:"deviation"`
	MaxSequenceLen    int                      `yaml:"max_sequence_len"`
	Strategy          string                   `yaml:"strategy"`
	RankBySpecificity bool                     `yaml:"rank_by_specificity"`
	Predicates        map[string]tt.ConfigRule `yaml:"predicates"`
}

func DefaultConfig() Config {
	predicates := make(map[string]tt.ConfigRule, len(predicate.AllKinds))
	for _, k := range predicate.AllKinds {
		predicates[k.Name()] = tt.ConfigRule{Enabled: true}
	}
	return Config{
		Name:              "refazer",
		Deviation:         dag.DefaultDeviation,
		MaxSequenceLen:    DefaultMaxSequenceLen,
		Strategy:          DefaultStrategy,
		RankBySpecificity: true,
		Predicates:        predicates,
	}
}

// LoadConfig reads a configuration file on top of the defaults. A missing
// file yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing configuration %s: %w", path, err)
	}
	return config, config.Validate()
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	if c.Deviation < 1 {
		return fmt.Errorf("deviation must be at least 1, got %d", c.Deviation)
	}
	if c.MaxSequenceLen < 0 {
		return fmt.Errorf("max_sequence_len must not be negative, got %d", c.MaxSequenceLen)
	}
	if _, err := decompose.Lookup(c.Strategy); err != nil {
		return err
	}
	_, err := c.Kinds()
	return err
}

// Kinds returns the enabled predicate kinds in their canonical order.
// Kinds absent from the predicates map are enabled.
func (c Config) Kinds() ([]predicate.Kind, error) {
	for name := range c.Predicates {
		if _, err := predicate.ParseKind(name); err != nil {
			return nil, err
		}
	}
	var kinds []predicate.Kind
	for _, k := range predicate.AllKinds {
		rule, ok := c.Predicates[k.Name()]
		if ok && !rule.Enabled {
			continue
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
