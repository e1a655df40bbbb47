package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilchrisn/sbm-partition/pkg/partition"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "", "run", "--graph", "two-triangles", "--groups", "2",
		"--trials", "64", "--seed", "3", "--log-level", "disabled")
	require.NoError(t, err)

	z, err := partition.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.True(t, partition.Equivalent(partition.Partition{0, 0, 0, 1, 1, 1}, z), "got %v", z)
}

func TestRunCommandWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	track := filepath.Join(dir, "moves.jsonl")
	metricsFile := filepath.Join(dir, "dcsbm.prom")

	_, err := execute(t, "", "run", "--graph", "star", "--trials", "2", "--seed", "1",
		"--workers", "1", "--full-eval", "--track", track, "--metrics-file", metricsFile,
		"--log-level", "disabled")
	require.NoError(t, err)

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dcsbm_searches_total")

	_, err = os.Stat(track)
	assert.NoError(t, err)
}

func TestScoreCommand(t *testing.T) {
	out, err := execute(t, "0 0 0 1 1 1\n", "score", "--graph", "two-triangles", "--groups", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "nodes:          6")
	assert.Contains(t, out, "edges:          6")
	assert.Contains(t, out, "groups:         2 (2 non-empty)")
	assert.Contains(t, out, "log-likelihood: -21.501114")
	assert.Contains(t, out, "modularity:     0.500000")
}

func TestScoreCommandRejectsBadPartition(t *testing.T) {
	_, err := execute(t, "0 0 1\n", "score", "--graph", "two-triangles")
	assert.Error(t, err)

	_, err = execute(t, "0 0 0 1 1 5\n", "score", "--graph", "two-triangles", "--groups", "2")
	assert.Error(t, err)
}

func TestUnknownGraph(t *testing.T) {
	_, err := execute(t, "", "run", "--graph", "petersen", "--log-level", "disabled")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dcsbm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm:\n  groups: 1\nlogging:\n  level: disabled\n"), 0o644))

	out, err := execute(t, "", "run", "--config", path, "--graph", "two-triangles", "--seed", "1")
	require.NoError(t, err)
	assert.Equal(t, "0 0 0 0 0 0\n", out)
}
