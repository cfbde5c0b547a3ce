package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/artifact"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/domain"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/engine"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/stats"
	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/workspace"
	"golang.org/x/sync/semaphore"
)

// Options tune the render pipeline
type Options struct {
	TempRoot      string        // parent of request workspaces, empty = OS temp dir
	FlushDelay    time.Duration // pause between engine exit and artifact search
	Timeout       time.Duration // engine run limit, 0 = none
	MaxConcurrent int           // simultaneous engine runs, 0 = unlimited
}

// RenderInput carries the raw request fields before validation.
// Format is nil when the caller did not send one.
type RenderInput struct {
	Code    string
	Scene   string
	Format  *string
	Quality string
}

// RenderService runs render jobs. It holds no per-request state.
type RenderService struct {
	runner   engine.Runner
	recorder stats.Recorder
	opts     Options
	sem      *semaphore.Weighted
	live     *workspace.Registry
}

// NewRenderService creates a render service
func NewRenderService(runner engine.Runner, recorder stats.Recorder, opts Options) *RenderService {
	if recorder == nil {
		recorder = stats.NewMemoryRecorder()
	}
	s := &RenderService{
		runner:   runner,
		recorder: recorder,
		opts:     opts,
		live:     workspace.NewRegistry(),
	}
	if opts.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}
	return s
}

// Stats returns the current render counters
func (s *RenderService) Stats(ctx context.Context) (stats.Snapshot, error) {
	return s.recorder.Snapshot(ctx)
}

// Workspaces lists the workspaces of renders in progress
func (s *RenderService) Workspaces() *workspace.Registry {
	return s.live
}

// StatsBackend names the counter store
func (s *RenderService) StatsBackend() string {
	return s.recorder.Backend()
}

// Render validates the input, runs the engine in a fresh workspace and
// returns the discovered artifact. The workspace is removed on every path.
func (s *RenderService) Render(ctx context.Context, in RenderInput) (result *domain.RenderResult, err error) {
	logger := NewLogger(ctx)
	start := time.Now()

	defer func() {
		if recErr := s.recorder.Record(context.WithoutCancel(ctx), classify(err), time.Since(start)); recErr != nil {
			logger.LogWarnf("render", "stats not recorded: %v", recErr)
		}
	}()

	req, err := domain.NewRenderRequest(in.Code, in.Scene, in.Format, in.Quality)
	if err != nil {
		return nil, err
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCapacity, err)
		}
		defer s.sem.Release(1)
	}

	logger.LogInfof("render", "scene=%s format=%s quality=%s", req.Scene, req.Format, req.Quality)
	result, err = s.run(ctx, logger, req)
	if err != nil {
		logger.LogError("render", err)
		return nil, err
	}
	logger.LogInfof("render", "artifact=%s bytes=%d elapsed=%s", result.Filename, len(result.Data), time.Since(start))
	return result, nil
}

func (s *RenderService) run(ctx context.Context, logger *Logger, req *domain.RenderRequest) (result *domain.RenderResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic during render: %v", r)
		}
	}()

	ws, err := workspace.New(s.opts.TempRoot)
	if err != nil {
		return nil, err
	}
	s.live.Add(ws.Dir)
	defer func() {
		if cerr := ws.Cleanup(); cerr != nil {
			logger.LogWarnf("cleanup", "dir=%s error=%v", ws.Dir, cerr)
		}
		s.live.Remove(ws.Dir)
	}()

	source, err := ws.WriteSource(req.Code)
	if err != nil {
		return nil, err
	}

	// The engine keeps running if the client goes away; only the timeout stops it.
	runCtx := context.WithoutCancel(ctx)
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, s.opts.Timeout)
		defer cancel()
	}

	out, err := s.runner.Run(runCtx, engine.Invocation{
		Dir:         ws.Dir,
		QualityFlag: req.Quality.Flag(),
		SourcePath:  source,
		Scene:       req.Scene,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, newRenderError(domain.ErrEngineTimeout, out)
		}
		return nil, err
	}
	if out.ExitCode != 0 {
		return nil, newRenderError(domain.ErrEngineFailed, out)
	}

	if s.opts.FlushDelay > 0 {
		time.Sleep(s.opts.FlushDelay)
	}

	path, err := artifact.Find(ws.MediaPath(), req.Scene, req.Format.Extensions(), domain.AllExtensions())
	if err != nil {
		return nil, fmt.Errorf("failed to search render output: %w", err)
	}
	if path == "" {
		return nil, newRenderError(domain.ErrArtifactNotFound, out)
	}

	name, data, err := artifact.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	return &domain.RenderResult{
		Filename: name,
		Data:     data,
		Stdout:   out.Stdout,
		Stderr:   out.Stderr,
	}, nil
}

func newRenderError(kind error, out *engine.Output) *domain.RenderError {
	e := &domain.RenderError{Err: kind}
	if out != nil {
		e.Stdout = out.Stdout
		e.Stderr = out.Stderr
	}
	return e
}

func classify(err error) stats.Outcome {
	switch {
	case err == nil:
		return stats.OutcomeSuccess
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedFormat):
		return stats.OutcomeInvalidInput
	case errors.Is(err, domain.ErrCapacity):
		return stats.OutcomeRejected
	case errors.Is(err, domain.ErrEngineTimeout):
		return stats.OutcomeTimeout
	case errors.Is(err, domain.ErrEngineFailed):
		return stats.OutcomeEngineFailed
	case errors.Is(err, domain.ErrArtifactNotFound):
		return stats.OutcomeNotFound
	default:
		return stats.OutcomeInternal
	}
}
