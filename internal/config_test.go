package internal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcioaug/Refazer-sub001/internal/decompose"
	"github.com/marcioaug/Refazer-sub001/internal/predicate"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 2, config.Deviation)
	assert.Equal(t, DefaultMaxSequenceLen, config.MaxSequenceLen)
	assert.Equal(t, "statement", config.Strategy)

	kinds, err := config.Kinds()
	require.NoError(t, err)
	assert.Equal(t, predicate.AllKinds, kinds)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, c Config)
		wantErr error
		anyErr  bool
	}{
		{
			name:    "overrides keep unset defaults",
			content: "name: mine\ndeviation: 1\nstrategy: node\n",
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "mine", c.Name)
				assert.Equal(t, 1, c.Deviation)
				assert.Equal(t, "node", c.Strategy)
				assert.Equal(t, DefaultMaxSequenceLen, c.MaxSequenceLen)
				assert.True(t, c.RankBySpecificity)
			},
		},
		{
			name:    "disabled kinds",
			content: "predicates:\n  contains:\n    enabled: false\n",
			check: func(t *testing.T, c Config) {
				kinds, err := c.Kinds()
				require.NoError(t, err)
				assert.Equal(t, []predicate.Kind{predicate.StartsWith, predicate.EndsWith}, kinds)
			},
		},
		{name: "unknown strategy", content: "strategy: expression\n", wantErr: decompose.ErrUnknownStrategy},
		{name: "unknown kind", content: "predicates:\n  matches:\n    enabled: true\n", anyErr: true},
		{name: "unknown field", content: "severity: error\n", anyErr: true},
		{name: "zero deviation", content: "deviation: 0\n", anyErr: true},
		{name: "negative bound", content: "max_sequence_len: -1\n", anyErr: true},
	}
	for i, tt := range tests {
		tt := tt
		path := writeFile(t, dir, filepath.Base(t.Name())+string(rune('a'+i))+".yaml", tt.content)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config, err := LoadConfig(path)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				tt.check(t, config)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()
	config, err := LoadConfig(filepath.Join(t.TempDir(), DefaultConfigFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	config, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}
