package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bench/bench"
	"github.com/cwbudde/algo-bench/internal/config"
	"github.com/cwbudde/algo-bench/internal/store"
	"github.com/cwbudde/algo-bench/suite"
	"github.com/cwbudde/algo-bench/transform"
)

// runCLI executes args in a scratch directory and restores the default
// logger afterwards.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunPrintsSeconds(t *testing.T) {
	t.Chdir(t.TempDir())

	code, out, errOut := runCLI(t, "run", "--size", "5", "--transform", "identity")
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1, "stdout carries only the duration")
	secs, err := strconv.ParseFloat(lines[0], 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, secs, 0.0)
}

func TestRunAllModes(t *testing.T) {
	t.Chdir(t.TempDir())

	code, out, errOut := runCLI(t, "run", "-n", "1000", "--accelerated", "--layout", "boxed", "--timed-alloc", "--verify", "-v")
	require.Equal(t, 0, code, errOut)
	assert.NotEmpty(t, strings.TrimSpace(out))
	assert.Contains(t, errOut, "impl=generic", "debug log on stderr")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero size", []string{"run", "--size", "0"}, "error: precondition:"},
		{"negative size", []string{"run", "--size", "-3"}, "error: precondition:"},
		{"domain", []string{"run", "--size", "3", "--transform", "log"}, "error: domain:"},
		{"allocation", []string{"run", "--size", "1000", "--max-bytes", "100"}, "error: allocation:"},
		{"unknown transform", []string{"run", "--size", "10", "--transform", "nope"}, "error: precondition:"},
		{"bad layout", []string{"run", "--size", "10", "--layout", "tree"}, "error: failure:"},
		{"missing size", []string{"run"}, "error: failure:"},
		{"bad log format", []string{"run", "--size", "10", "--log-format", "xml"}, "error: config:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			code, out, errOut := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out, "no duration on failure")
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestKernels(t *testing.T) {
	t.Chdir(t.TempDir())

	code, out, errOut := runCLI(t, "kernels")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "TRANSFORM")
	assert.Contains(t, out, "generic")
	assert.Contains(t, out, "SELECTED")
}

const suiteConfig = `
cases:
  - name: plain
    size: 2000
    transform: tan
  - name: accel
    size: 2000
    transform: tan
    strategy: accelerated
`

func TestSuiteWithHistoryAndMetrics(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("ewbench.yaml", []byte(suiteConfig), 0o644))
	db := filepath.Join(dir, "history.db")
	prom := filepath.Join(dir, "ewbench.prom")

	code, out, errOut := runCLI(t, "suite", "--format", "text", "--warmup", "0", "--repetitions", "2",
		"--db", db, "--metrics-file", prom)
	require.Equal(t, 0, code, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "plain "))
	assert.True(t, strings.HasPrefix(lines[1], "accel "))

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `ewbench_runs_total{case="accel"} 2`)

	code, out, errOut = runCLI(t, "history", "--db", db)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "accel")

	code, _, errOut = runCLI(t, "suite", "--format", "text", "--warmup", "0", "--repetitions", "1", "--db", db)
	require.Equal(t, 0, code, errOut)

	code, out, errOut = runCLI(t, "history", "--db", db, "--latest")
	require.Equal(t, 0, code, errOut)
	assert.Regexp(t, `(?m)^2\s`, out)
	assert.NotRegexp(t, `(?m)^1\s`, out)
}

func TestSuiteJSONFromExplicitConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfg := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(suiteConfig+"suite:\n  repetitions: 1\n  warmup: 0\nformat: json\n"), 0o644))

	code, out, errOut := runCLI(t, "suite", "--config", cfg)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, `"comparisons"`)
	assert.Contains(t, out, `"accelerated": "accel"`)
}

func TestSuiteInvalidCase(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("ewbench.yaml", []byte("cases:\n  - name: empty\n    size: 0\n"), 0o644))

	code, _, errOut := runCLI(t, "suite")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "error: config:")
}

type fakeStore struct {
	saved   []suite.Report
	saveErr error
}

func (f *fakeStore) Save(_ context.Context, rep suite.Report) (int64, error) {
	if f.saveErr != nil {
		return 0, f.saveErr
	}
	f.saved = append(f.saved, rep)
	return int64(len(f.saved)), nil
}

func (f *fakeStore) List(context.Context, int) ([]store.RunRecord, error) { return nil, nil }
func (f *fakeStore) Close() error                                         { return nil }

func (f *fakeStore) Latest(context.Context) (store.RunRecord, error) {
	return store.RunRecord{}, store.ErrNotFound
}

func TestSuiteSaveFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("ewbench.yaml", []byte(suiteConfig), 0o644))

	orig := openStore
	defer func() { openStore = orig }()
	fake := &fakeStore{saveErr: errors.New("disk full")}
	openStore = func(string) (historyStore, error) { return fake, nil }

	code, _, errOut := runCLI(t, "suite", "--repetitions", "1", "--warmup", "0", "--db", "ignored.db")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "disk full")

	fake.saveErr = nil
	code, _, errOut = runCLI(t, "suite", "--repetitions", "1", "--warmup", "0", "--db", "ignored.db")
	require.Equal(t, 0, code, errOut)
	require.Len(t, fake.saved, 1)
	assert.Len(t, fake.saved[0].Cases, 2)
}

func TestHistoryLatestEmpty(t *testing.T) {
	t.Chdir(t.TempDir())

	orig := openStore
	defer func() { openStore = orig }()
	openStore = func(string) (historyStore, error) { return &fakeStore{}, nil }

	code, out, errOut := runCLI(t, "history", "--db", "empty.db", "--latest")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "no runs recorded")
}

func TestHistoryRequiresDB(t *testing.T) {
	t.Chdir(t.TempDir())

	code, _, errOut := runCLI(t, "history")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no history database configured")
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrap: %w", bench.ErrInvalidSize), "precondition"},
		{&bench.AllocationError{}, "allocation"},
		{&bench.DomainError{}, "domain"},
		{&bench.MismatchError{}, "mismatch"},
		{fmt.Errorf("x: %w", config.ErrInvalidConfig), "config"},
		{transform.ErrUnknownTransform, "precondition"},
		{suite.ErrInvalidCase, "precondition"},
		{errors.New("other"), "failure"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorKind(tt.err), tt.err.Error())
	}
}
