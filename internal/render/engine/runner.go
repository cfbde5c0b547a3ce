package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultBinary is the engine executable looked up on PATH
const DefaultBinary = "manim"

// waitDelay bounds how long output copying may outlive a killed process;
// the engine starts ffmpeg children that can keep the pipes open.
const waitDelay = 5 * time.Second

// Invocation describes one engine run
type Invocation struct {
	Dir         string // working directory, the request workspace
	QualityFlag string
	SourcePath  string
	Scene       string
}

// Args is the engine argument list: flag, source file, scene
func (inv Invocation) Args() []string {
	return []string{inv.QualityFlag, inv.SourcePath, inv.Scene}
}

// Output is what the engine printed and how it exited
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes the rendering engine
type Runner interface {
	Run(ctx context.Context, inv Invocation) (*Output, error)
}

// ExecRunner runs the engine as a child process
type ExecRunner struct {
	Binary string
}

// NewExecRunner creates a runner for the given binary (empty = manim)
func NewExecRunner(binary string) *ExecRunner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecRunner{Binary: binary}
}

// Available reports whether the engine binary can be resolved
func (r *ExecRunner) Available() bool {
	_, err := exec.LookPath(r.Binary)
	return err == nil
}

// Run blocks until the process exits. A non-zero exit is reported through
// Output.ExitCode, not as an error. If ctx ends first the process is killed
// and ctx.Err() is returned together with whatever output was captured.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (*Output, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.Binary, inv.Args()...)
	cmd.Dir = inv.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	out := &Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctx.Err() != nil {
			out.ExitCode = -1
			return out, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}

		return out, fmt.Errorf("failed to run %s: %w", r.Binary, err)
	}

	return out, nil
}
