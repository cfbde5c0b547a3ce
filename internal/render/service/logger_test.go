package service

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/GoSim-25-26J-441/manim-render-service/internal/api/http/middleware"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(prev)
		SetLogLevel("info")
	})
	return &buf
}

func TestLoggerLevels(t *testing.T) {
	buf := captureLog(t)
	logger := NewLogger(middleware.WithRequestID(context.Background(), "rid-1"))

	SetLogLevel("info")
	logger.LogInfof("render", "scene=%s", "Dot")
	assert.Contains(t, buf.String(), "[info] request_id=rid-1 operation=render scene=Dot")

	buf.Reset()
	SetLogLevel("warn")
	logger.LogInfof("render", "scene=%s", "Dot")
	logger.LogWarnf("cleanup", "dir=%s", "/tmp/x")
	assert.NotContains(t, buf.String(), "[info]")
	assert.Contains(t, buf.String(), "[warn] request_id=rid-1 operation=cleanup dir=/tmp/x")

	buf.Reset()
	SetLogLevel("error")
	logger.LogWarnf("cleanup", "dir=%s", "/tmp/x")
	logger.LogError("render", errors.New("manim failed"))
	assert.NotContains(t, buf.String(), "[warn]")
	assert.Contains(t, buf.String(), "[error] request_id=rid-1 operation=render error=manim failed")
}

func TestLoggerUnknownRequestID(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel("bogus")
	NewLogger(context.Background()).LogInfof("render", "ok")
	assert.Contains(t, buf.String(), "request_id=unknown operation=render ok")
}
