package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rubiojr/catalogue/pkg/config"
	"github.com/rubiojr/catalogue/pkg/log"
	"github.com/rubiojr/catalogue/pkg/search"
)

func newTestWebServer(t *testing.T, content string) *WebServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return &WebServer{
		configPath: path,
		config:     cfg,
		service:    search.NewService(newClient(cfg), searchConfig(cfg)),
		logger:     log.ForService("web"),
	}
}

func TestWebServerReload(t *testing.T) {
	t.Cleanup(log.ResetDebug)

	ws := newTestWebServer(t, "[api]\nurl = \"http://one.example.com/api\"\n")

	updated := `
debug_services = ["searchapi"]

[api]
url = "http://two.example.com/api"

[search]
results_per_page = 10
`
	if err := os.WriteFile(ws.configPath, []byte(updated), 0644); err != nil {
		t.Fatalf("Failed to update config: %v", err)
	}

	ws.reload()

	if ws.config.API.URL != "http://two.example.com/api" {
		t.Errorf("Expected reloaded API URL, got %s", ws.config.API.URL)
	}
	if ws.config.Search.ResultsPerPage != 10 {
		t.Errorf("Expected 10 results per page, got %d", ws.config.Search.ResultsPerPage)
	}
	if !log.DebugEnabledFor("searchapi") {
		t.Error("Expected debug logging for searchapi after reload")
	}
}

func TestWebServerReloadKeepsConfigOnError(t *testing.T) {
	ws := newTestWebServer(t, "[api]\nurl = \"http://one.example.com/api\"\n")

	if err := os.WriteFile(ws.configPath, []byte("[web]\nport = 0\n"), 0644); err != nil {
		t.Fatalf("Failed to update config: %v", err)
	}

	ws.reload()

	if ws.config.API.URL != "http://one.example.com/api" {
		t.Errorf("Expected previous config to be kept, got %s", ws.config.API.URL)
	}
}

func TestWebServerReloadKeepsFlags(t *testing.T) {
	ws := newTestWebServer(t, "")
	ws.host, ws.port = "0.0.0.0", "9000"
	if err := applyWebFlags(ws.config, ws.host, ws.port); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ws.reload()

	if got := ws.config.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Expected flags to survive a reload, got %s", got)
	}
}

func TestApplyWebFlagsInvalidPort(t *testing.T) {
	cfg := config.GetDefaultConfig()
	if err := applyWebFlags(cfg, "", "http"); err == nil {
		t.Error("Expected an error for a non numeric port")
	}
}

func TestNewClientBaseURL(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.API.URL = "http://api.example.com/v1/"

	if got := newClient(cfg).BaseURL(); got != "http://api.example.com/v1" {
		t.Errorf("Expected trimmed base URL, got %s", got)
	}
}
