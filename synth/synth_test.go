package synth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marcioaug/Refazer-sub001/internal"
	tt "github.com/marcioaug/Refazer-sub001/internal/types"
)

type mockLocateEngine struct {
	mock.Mock
}

func (m *mockLocateEngine) Locate(program *internal.Program, filename string) ([]tt.Location, error) {
	args := m.Called(program, filename)
	locations, _ := args.Get(0).([]tt.Location)
	return locations, args.Error(1)
}

const sampleSource = `package sample

func run() {
	fmt.Println(a)
	b := 1
	log.Print(c)
	d = e + 2
}
`

func writeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"a.go", "sub/b.gno", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("package x\n"), 0o644))
	}
	return dir
}

func TestProcessPathDirectory(t *testing.T) {
	t.Parallel()
	dir := writeTree(t)
	program := &internal.Program{}

	engine := new(mockLocateEngine)
	engine.On("Locate", program, filepath.Join(dir, "sub", "b.gno")).
		Return([]tt.Location{{Filename: "b.gno", Rule: "contains"}}, nil)
	engine.On("Locate", program, filepath.Join(dir, "a.go")).
		Return([]tt.Location{{Filename: "a.go", Rule: "contains"}}, nil)

	locations, err := ProcessPath(context.Background(), zap.NewNop(), engine, program, dir, ProcessFile)
	require.NoError(t, err)
	engine.AssertExpectations(t)
	engine.AssertNotCalled(t, "Locate", program, filepath.Join(dir, "notes.txt"))

	require.Len(t, locations, 2)
	assert.Equal(t, "a.go", locations[0].Filename)
	assert.Equal(t, "b.gno", locations[1].Filename)
}

func TestProcessPathSkipsFailingFiles(t *testing.T) {
	t.Parallel()
	dir := writeTree(t)
	program := &internal.Program{}

	engine := new(mockLocateEngine)
	engine.On("Locate", program, filepath.Join(dir, "a.go")).Return(nil, errors.New("parse error"))
	engine.On("Locate", program, filepath.Join(dir, "sub", "b.gno")).
		Return([]tt.Location{{Filename: "b.gno"}}, nil)

	locations, err := ProcessPath(context.Background(), nil, engine, program, dir, ProcessFile)
	require.NoError(t, err)
	assert.Len(t, locations, 1)
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	dir := writeTree(t)
	program := &internal.Program{}

	engine := new(mockLocateEngine)
	engine.On("Locate", program, filepath.Join(dir, "a.go")).Return([]tt.Location{{Filename: "a.go"}}, nil)

	locations, err := ProcessPath(context.Background(), nil, engine, program, filepath.Join(dir, "a.go"), ProcessFile)
	require.NoError(t, err)
	assert.Len(t, locations, 1)

	locations, err = ProcessPath(context.Background(), nil, engine, program, filepath.Join(dir, "notes.txt"), ProcessFile)
	require.NoError(t, err)
	assert.Empty(t, locations)

	_, err = ProcessPath(context.Background(), nil, engine, program, filepath.Join(dir, "missing"), ProcessFile)
	assert.Error(t, err)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("test%d.go", i)), []byte(sampleSource), 0o644))
	}

	engine := new(mockLocateEngine)
	engine.On("Locate", mock.Anything, mock.Anything).Return([]tt.Location{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	locations, err := ProcessPath(ctx, nil, engine, &internal.Program{}, dir, ProcessFile)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, locations)
	engine.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything)
}

func TestProcessFilesStopsOnError(t *testing.T) {
	t.Parallel()
	dir := writeTree(t)
	engine := new(mockLocateEngine)
	engine.On("Locate", mock.Anything, mock.Anything).Return([]tt.Location{{Filename: "a.go"}}, nil)

	locations, err := ProcessFiles(context.Background(), zap.NewNop(), engine, &internal.Program{},
		[]string{filepath.Join(dir, "a.go"), filepath.Join(dir, "missing.go")}, ProcessFile)
	assert.Error(t, err)
	assert.Len(t, locations, 1)
}

func TestLearnAndLocate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(sampleSource), 0o644))
	examples := filepath.Join(dir, "examples.yaml")
	require.NoError(t, os.WriteFile(examples, []byte(`examples:
  - {file: sample.go, snippet: "fmt.Println(a)", label: true}
  - {file: sample.go, snippet: "log.Print(c)", label: true}
  - {file: sample.go, snippet: "b := 1", label: false}
  - {file: sample.go, snippet: "d = e + 2", label: false}
`), 0o644))

	engine, err := New(filepath.Join(dir, ".refazer.yaml"), zap.NewNop())
	require.NoError(t, err)

	program, err := Learn(engine, examples)
	require.NoError(t, err)
	require.False(t, program.Empty())

	locations, err := ProcessFiles(context.Background(), zap.NewNop(), engine, program, []string{dir}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "fmt.Println(a)", locations[0].Snippet)
	assert.Equal(t, "log.Print(c)", locations[1].Snippet)

	_, err = Learn(engine, filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("deviation: 0\n"), 0o644))
	_, err = New(bad, nil)
	assert.Error(t, err)
}
