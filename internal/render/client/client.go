package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultServerURL is where a locally started render server listens
const DefaultServerURL = "http://localhost:8000"

// Client talks to the render server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. Renders can take minutes, so the timeout is generous.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultServerURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Minute,
		},
	}
}

// RenderRequest is the body of POST /render
type RenderRequest struct {
	Code    string `json:"code"`
	Scene   string `json:"scene"`
	Format  string `json:"format,omitempty"`
	Quality string `json:"quality,omitempty"`
}

type renderResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Data     string `json:"data"`
	Error    string `json:"error"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Artifact is a decoded render result
type Artifact struct {
	Filename string
	Data     []byte
}

// Error is a failure reported by the server
type Error struct {
	StatusCode int
	Message    string
	Stdout     string
	Stderr     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("render failed (status %d): %s", e.StatusCode, e.Message)
}

// Render submits a job and waits for the artifact
func (c *Client) Render(ctx context.Context, r RenderRequest) (*Artifact, error) {
	jsonData, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call render server: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var out renderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("server returned %d", resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "unknown"
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg, Stdout: out.Stdout, Stderr: out.Stderr}
	}

	data, err := base64.StdEncoding.DecodeString(out.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	return &Artifact{Filename: out.Filename, Data: data}, nil
}
