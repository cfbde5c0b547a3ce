package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStub creates an executable shell script standing in for the engine
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-manim")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestExecRunner_PassesArgumentsAndWorkDir(t *testing.T) {
	bin := writeStub(t, `echo "$1|$2|$3"; pwd; echo warn >&2`+"\n")
	dir := t.TempDir()

	out, err := NewExecRunner(bin).Run(context.Background(), Invocation{
		Dir:         dir,
		QualityFlag: "-qm",
		SourcePath:  "/tmp/x/manim_note.py",
		Scene:       "Dot",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.ExitCode)

	realDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, out.Stdout, "-qm|/tmp/x/manim_note.py|Dot\n")
	assert.Contains(t, out.Stdout, realDir)
	assert.Equal(t, "warn\n", out.Stderr)
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	bin := writeStub(t, "printf SyntaxError >&2\nexit 1\n")

	out, err := NewExecRunner(bin).Run(context.Background(), Invocation{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 1, out.ExitCode)
	assert.Equal(t, "", out.Stdout)
	assert.Equal(t, "SyntaxError", out.Stderr)
}

func TestExecRunner_Timeout(t *testing.T) {
	bin := writeStub(t, "echo started\nexec sleep 5\n")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	out, err := NewExecRunner(bin).Run(ctx, Invocation{Dir: t.TempDir()})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, -1, out.ExitCode)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	r := NewExecRunner(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.False(t, r.Available())

	_, err := r.Run(context.Background(), Invocation{Dir: t.TempDir()})
	assert.Error(t, err)
}

func TestNewExecRunner_DefaultsToManim(t *testing.T) {
	assert.Equal(t, "manim", NewExecRunner("").Binary)
}
