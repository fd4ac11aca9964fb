package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./mixgen.db" {
			t.Errorf("expected database path ./mixgen.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Generator.MaxRetries != 2 {
			t.Errorf("expected max_retries 2, got %d", config.Generator.MaxRetries)
		}

		if config.Generator.TimeoutSeconds != 50 {
			t.Errorf("expected timeout_seconds 50, got %d", config.Generator.TimeoutSeconds)
		}

		if config.Credentials.Gemini.Model != "gemini-pro" {
			t.Errorf("expected gemini model gemini-pro, got %s", config.Credentials.Gemini.Model)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080

[generator]
target_count = 15
max_retries = 4
timeout_seconds = 30

[enrichment]
enabled = true
rate_limit = 2.5
workers = 3

[credentials.gemini]
api_key = "test_api_key"
model = "gemini-1.5-pro"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Generator.TargetCount != 15 || config.Generator.MaxRetries != 4 {
			t.Errorf("unexpected generator config: %+v", config.Generator)
		}

		if !config.Enrichment.Enabled || config.Enrichment.RateLimit != 2.5 {
			t.Errorf("unexpected enrichment config: %+v", config.Enrichment)
		}

		if config.Credentials.Gemini.Model != "gemini-1.5-pro" {
			t.Errorf("expected gemini model gemini-1.5-pro, got %s", config.Credentials.Gemini.Model)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
