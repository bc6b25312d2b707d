package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pyforge/internal/config"

	"github.com/rs/zerolog"
)

// SandboxClient talks to the sandboxed code execution service.
type SandboxClient interface {
	// Execute runs the given source in the sandbox and returns the raw run
	// streams. The sandbox enforces its own run timeout; the HTTP client's
	// deadline is longer so the sandbox limit fires first.
	Execute(ctx context.Context, code string) (*SandboxRunOutput, error)
}

// SandboxRunOutput is the subset of the sandbox response the platform reads.
type SandboxRunOutput struct {
	Stdout string
	Stderr string
}

type sandboxClient struct {
	baseURL            string
	language           string
	version            string
	runTimeoutMS       int
	compileMemoryLimit int64
	client             *http.Client
	logger             zerolog.Logger
}

// NewSandboxClient creates a SandboxClient from the sandbox config block.
func NewSandboxClient(cfg *config.Config, logger zerolog.Logger) SandboxClient {
	return &sandboxClient{
		baseURL:            cfg.SandboxBaseURL,
		language:           cfg.SandboxLanguage,
		version:            cfg.SandboxVersion,
		runTimeoutMS:       cfg.SandboxRunTimeoutMS,
		compileMemoryLimit: cfg.SandboxCompileMemoryLimit,
		client: &http.Client{
			Timeout: time.Duration(cfg.SandboxRequestTimeoutMS) * time.Millisecond,
		},
		logger: logger.With().Str("service", "SandboxClient").Logger(),
	}
}

type sandboxFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type sandboxExecuteRequest struct {
	Language           string        `json:"language"`
	Version            string        `json:"version"`
	Files              []sandboxFile `json:"files"`
	RunTimeout         int           `json:"run_timeout"`
	CompileMemoryLimit int64         `json:"compile_memory_limit"`
}

type sandboxExecuteResponse struct {
	Run struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
	} `json:"run"`
}

func (c *sandboxClient) Execute(ctx context.Context, code string) (*SandboxRunOutput, error) {
	reqBody := sandboxExecuteRequest{
		Language:           c.language,
		Version:            c.version,
		Files:              []sandboxFile{{Name: "main.py", Content: code}},
		RunTimeout:         c.runTimeoutMS,
		CompileMemoryLimit: c.compileMemoryLimit,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling execute request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v2/execute", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request to sandbox: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			c.logger.Warn().
				Err(readErr).
				Int("status_code", resp.StatusCode).
				Msg("Failed to read error response body from sandbox")
			return nil, fmt.Errorf("sandbox returned status %d", resp.StatusCode)
		}

		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("error_body", string(bodyBytes)).
			Msg("Sandbox returned an error response")
		return nil, fmt.Errorf("sandbox returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed sandboxExecuteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding sandbox response: %w", err)
	}

	return &SandboxRunOutput{
		Stdout: parsed.Run.Stdout,
		Stderr: parsed.Run.Stderr,
	}, nil
}
