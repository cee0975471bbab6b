package typegen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodnarbalazs/Cs2Ts/typegen/typescript"
)

func sampleResult() *Result {
	return &Result{
		Files: []typescript.FileResult{
			{OutputPath: "Models/Order", Content: "export interface Order {}\n"},
			{OutputPath: "Shared/Money", Content: "export interface Money {}\n"},
		},
		IndexContent: "export type { Order } from './Models/Order';\n",
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestArtifacts(t *testing.T) {
	tests := []struct {
		name string
		opts WriteOptions
		want string
	}{
		{"no header", WriteOptions{}, "export interface Order {}\n"},
		{"banner", WriteOptions{Banner: true}, Banner + "\n\nexport interface Order {}\n"},
		{"banner and lint", WriteOptions{Banner: true, ESLintDisable: true}, Banner + "\n" + ESLintDisable + "\n\nexport interface Order {}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifacts := Artifacts(sampleResult(), tt.opts)
			assert.Len(t, artifacts, 3)
			assert.Equal(t, tt.want, artifacts["Models/Order.ts"])
			assert.Contains(t, artifacts, "index.ts")
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	opts := WriteOptions{Dir: dir, Banner: true, Clean: true}

	report, err := Write(sampleResult(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Models/Order.ts", "Shared/Money.ts", "index.ts"}, report.Written)
	assert.Empty(t, report.Unchanged)
	assert.Equal(t, Banner+"\n\nexport interface Money {}\n", readFile(t, filepath.Join(dir, "Shared", "Money.ts")))

	// A second identical write touches nothing
	report, err = Write(sampleResult(), opts)
	require.NoError(t, err)
	assert.Empty(t, report.Written)
	assert.Len(t, report.Unchanged, 3)
}

func TestWriteCleansStaleFiles(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "Models", "Removed.ts")
	handWritten := filepath.Join(dir, "Models", "custom.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
	require.NoError(t, os.WriteFile(stale, []byte(Banner+"\n\nexport interface Removed {}\n"), 0644))
	require.NoError(t, os.WriteFile(handWritten, []byte("export const x = 1;\n"), 0644))

	report, err := Write(sampleResult(), WriteOptions{Dir: dir, Banner: true, Clean: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Models/Removed.ts"}, report.Removed)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, handWritten, "files without the banner are never removed")
}

func TestWriteWithoutClean(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "Removed.ts")
	require.NoError(t, os.WriteFile(stale, []byte(Banner+"\n"), 0644))

	report, err := Write(sampleResult(), WriteOptions{Dir: dir, Banner: true})
	require.NoError(t, err)
	assert.Empty(t, report.Removed)
	assert.FileExists(t, stale)
}

func TestWriteRequiresDir(t *testing.T) {
	_, err := Write(sampleResult(), WriteOptions{})
	assert.Error(t, err)
}

func TestWriteRejectsEscapingPaths(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"parent", "../escaped/Evil"},
		{"nested climb", "Models/../../Evil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dir := filepath.Join(root, "out")
			res := sampleResult()
			res.Files = append(res.Files, typescript.FileResult{OutputPath: tt.output, Content: "export interface Evil {}\n"})

			_, err := Write(res, WriteOptions{Dir: dir})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "outside the output directory")
			assert.NoFileExists(t, filepath.Join(dir, "Models", "Order.ts"), "nothing is written when any path escapes")
			assert.NoFileExists(t, filepath.Join(root, "escaped", "Evil.ts"))
			assert.NoFileExists(t, filepath.Join(root, "Evil.ts"))
		})
	}
}

func TestStaleFilesMissingDir(t *testing.T) {
	stale, err := StaleFiles(filepath.Join(t.TempDir(), "absent"), nil)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestStripHeader(t *testing.T) {
	tests := map[string]string{
		"body\n":              "body\n",
		Banner + "\n\nbody\n": "body\n",
		Banner + "\n" + ESLintDisable + "\n\nbody\n": "body\n",
		Banner + "\r\n\nbody\n":                      "body\n",
		"// other comment\nbody\n":                   "// other comment\nbody\n",
	}
	for input, want := range tests {
		assert.Equal(t, want, string(stripHeader([]byte(input))), "%q", input)
	}
}

func TestGenerateWriteRoundTrip(t *testing.T) {
	res, err := Run(context.Background(), sampleDeclarations(), testOptions())
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = Write(res, WriteOptions{Dir: dir, Banner: true})
	require.NoError(t, err)

	content := readFile(t, filepath.Join(dir, "Models", "Enums", "Status.ts"))
	assert.Contains(t, content, "export const Status = Object.freeze({")
	assert.FileExists(t, filepath.Join(dir, "index.ts"))
	assert.NoFileExists(t, filepath.Join(dir, "Runtime.ts"))
}
