package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rscarson/v8-coverage/internal/rangecov"
)

func writeReport(t *testing.T, dir, name string, p rangecov.ProcessCov) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, json.NewEncoder(f).Encode(p))
	return path
}

func TestReadCoverageFiles_PreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	pathA := writeReport(t, dir, "a.json", rangecov.ProcessCov{Result: []rangecov.ScriptCov{{URL: "/a.js"}}})
	pathB := writeReport(t, dir, "b.json", rangecov.ProcessCov{Result: []rangecov.ScriptCov{{URL: "/b.js"}}})

	got, err := readCoverageFiles(context.Background(), []string{pathA, pathB})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "/a.js", got[0].Result[0].URL)
	require.Equal(t, "/b.js", got[1].Result[0].URL)
}

func TestReadCoverageFiles_MissingFileErrors(t *testing.T) {
	_, err := readCoverageFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}

func TestReadCoverageFiles_InvalidJSONErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := readCoverageFiles(context.Background(), []string{path})
	require.Error(t, err)
}

func TestWriteCoverageFile_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	want := &rangecov.ProcessCov{Result: []rangecov.ScriptCov{{URL: "/a.js"}}}

	require.NoError(t, writeCoverageFile(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got rangecov.ProcessCov
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, *want, got)
}
