package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pyforge/internal/config"

	"github.com/rs/zerolog"
)

func sandboxTestConfig(baseURL string) *config.Config {
	return &config.Config{
		SandboxBaseURL:            baseURL,
		SandboxLanguage:           "python",
		SandboxVersion:            "3.11",
		SandboxRunTimeoutMS:       10000,
		SandboxRequestTimeoutMS:   15000,
		SandboxCompileMemoryLimit: 100000000,
	}
}

func TestSandboxClientExecute(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v2/execute" {
			t.Errorf("path = %s, want /api/v2/execute", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"run":{"stdout":"42\n","stderr":"","code":0},"language":"python","version":"3.11.0"}`))
	}))
	defer server.Close()

	client := NewSandboxClient(sandboxTestConfig(server.URL), zerolog.Nop())

	out, err := client.Execute(context.Background(), "print(6 * 7)")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if out.Stdout != "42\n" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "42\n")
	}
	if out.Stderr != "" {
		t.Errorf("Stderr = %q, want empty", out.Stderr)
	}

	if gotBody["language"] != "python" {
		t.Errorf("request language = %v, want python", gotBody["language"])
	}
	if gotBody["version"] != "3.11" {
		t.Errorf("request version = %v, want 3.11", gotBody["version"])
	}
	if gotBody["run_timeout"] != float64(10000) {
		t.Errorf("request run_timeout = %v, want 10000", gotBody["run_timeout"])
	}
	if gotBody["compile_memory_limit"] != float64(100000000) {
		t.Errorf("request compile_memory_limit = %v, want 100000000", gotBody["compile_memory_limit"])
	}

	files, ok := gotBody["files"].([]any)
	if !ok || len(files) != 1 {
		t.Fatalf("request files = %v, want one entry", gotBody["files"])
	}
	file := files[0].(map[string]any)
	if file["name"] != "main.py" {
		t.Errorf("file name = %v, want main.py", file["name"])
	}
	if file["content"] != "print(6 * 7)" {
		t.Errorf("file content = %v, want submitted code", file["content"])
	}
}

func TestSandboxClientExecuteRuntimeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"run":{"stdout":"","stderr":"Traceback (most recent call last):\n  NameError: name 'x' is not defined\n","code":1}}`))
	}))
	defer server.Close()

	client := NewSandboxClient(sandboxTestConfig(server.URL), zerolog.Nop())

	out, err := client.Execute(context.Background(), "print(x)")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if out.Stdout != "" {
		t.Errorf("Stdout = %q, want empty", out.Stdout)
	}
	if !strings.Contains(out.Stderr, "NameError") {
		t.Errorf("Stderr = %q, want a NameError traceback", out.Stderr)
	}
}

func TestSandboxClientExecuteNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"runtime unavailable"}`))
	}))
	defer server.Close()

	client := NewSandboxClient(sandboxTestConfig(server.URL), zerolog.Nop())

	_, err := client.Execute(context.Background(), "print(1)")
	if err == nil {
		t.Fatal("Execute should fail on a non-200 response")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error = %v, want status 500 mentioned", err)
	}
	if !strings.Contains(err.Error(), "runtime unavailable") {
		t.Errorf("error = %v, want response body included", err)
	}
}

func TestSandboxClientExecuteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewSandboxClient(sandboxTestConfig(server.URL), zerolog.Nop())

	_, err := client.Execute(context.Background(), "print(1)")
	if err == nil {
		t.Fatal("Execute should fail when the sandbox is unreachable")
	}
}
