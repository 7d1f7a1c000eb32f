package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSource = `package sample

func run() {
	fmt.Println(a)
	b := 1
	log.Print(c)
	d = e + 2
}
`

const otherSource = `package other

func g() {
	h.Do(v)
	w := 3
	if w > 1 {
		q.Run(w)
	}
}
`

// writeFile writes content under dir and returns the file's path.
func writeFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
