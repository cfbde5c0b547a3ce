package domain

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid render input")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEngineFailed      = errors.New("manim failed")
	ErrEngineTimeout     = errors.New("manim timed out")
	ErrArtifactNotFound  = errors.New("rendered file not found")
	ErrCapacity          = errors.New("render capacity unavailable")
)

// ValidationError is returned before any work is done for a request
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// RenderError is a failure that happened after the engine ran, so its
// captured output is available to the caller.
type RenderError struct {
	Err    error
	Stdout string
	Stderr string
}

func (e *RenderError) Error() string { return e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }
