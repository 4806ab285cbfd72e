package config

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validYAML = `
server:
  port: 8080
  env: staging
log_level: DEBUG
timezone: America/New_York
cache_size: 100
data:
  stations: bike_data/bluebikes-stations.json
  trips: https://example.com/trips.csv
  lanes:
    - city: boston
      source: bike_data/boston.geojson
    - city: cambridge
      source: bike_data/cambridge.geojson
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bikeflow.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write temporary config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg, err := LoadConfigFromFile(writeTempConfig(t, validYAML))
		if err != nil {
			t.Fatalf("LoadConfigFromFile failed: %v", err)
		}
		if cfg.Server.Port != 8080 || cfg.Server.Env != "staging" {
			t.Errorf("unexpected server config %+v", cfg.Server)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("expected log level to be normalized to debug, got %q", cfg.LogLevel)
		}
		if cfg.SlogLevel() != slog.LevelDebug {
			t.Errorf("expected slog debug level, got %v", cfg.SlogLevel())
		}
		if len(cfg.Data.Lanes) != 2 || cfg.Data.Lanes[1].City != "cambridge" {
			t.Errorf("unexpected lanes %+v", cfg.Data.Lanes)
		}
		loc, err := cfg.Location()
		if err != nil {
			t.Fatalf("Location failed: %v", err)
		}
		if loc.String() != "America/New_York" {
			t.Errorf("expected America/New_York, got %s", loc)
		}
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		cfg, err := LoadConfigFromFile(writeTempConfig(t, "data:\n  stations: s.json\n  trips: t.csv\n"))
		if err != nil {
			t.Fatalf("LoadConfigFromFile failed: %v", err)
		}
		if cfg.Server.Port != DefaultPort || cfg.Server.Env != DefaultEnv || cfg.LogLevel != DefaultLogLevel {
			t.Errorf("defaults not applied: %+v", cfg)
		}
		loc, _ := cfg.Location()
		if loc != time.Local {
			t.Errorf("expected local zone, got %v", loc)
		}
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		if _, err := LoadConfigFromFile(writeTempConfig(t, "server: [not: valid")); err == nil {
			t.Error("Expected error with invalid YAML, got none")
		}
	})

	t.Run("MissingTrips", func(t *testing.T) {
		_, err := LoadConfigFromFile(writeTempConfig(t, "data:\n  stations: s.json\n"))
		if err == nil {
			t.Error("Expected validation error for missing trips source, got none")
		}
	})

	t.Run("BadTimezone", func(t *testing.T) {
		content := "timezone: Mars/Olympus\ndata:\n  stations: s.json\n  trips: t.csv\n"
		if _, err := LoadConfigFromFile(writeTempConfig(t, content)); err == nil {
			t.Error("Expected error for unknown timezone, got none")
		}
	})

	t.Run("DuplicateLaneCity", func(t *testing.T) {
		content := strings.Replace(validYAML, "city: cambridge", "city: boston", 1)
		_, err := LoadConfigFromFile(writeTempConfig(t, content))
		if err == nil || !strings.Contains(err.Error(), "duplicate lane city") {
			t.Errorf("Expected duplicate lane city error, got %v", err)
		}
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		if _, err := LoadConfigFromFile("non-existent-file.yml"); err == nil {
			t.Error("Expected error for non-existent file, got none")
		}
	})
}

func TestLoadConfigFromURL(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	t.Run("ValidResponse", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "user" || pass != "pass" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			w.Write([]byte(validYAML))
		}))
		defer ts.Close()

		cfg, err := LoadConfigFromURL(context.Background(), client, ts.URL, "user", "pass")
		if err != nil {
			t.Fatalf("LoadConfigFromURL failed: %v", err)
		}
		if cfg.Data.Trips != "https://example.com/trips.csv" {
			t.Errorf("unexpected trips source %q", cfg.Data.Trips)
		}
	})

	t.Run("ErrorStatus", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		if _, err := LoadConfigFromURL(context.Background(), client, ts.URL, "", ""); err == nil {
			t.Error("Expected error for 500 response, got none")
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(validYAML))
		}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := LoadConfigFromURL(ctx, client, ts.URL, "", ""); err == nil {
			t.Error("Expected error for cancelled context, got none")
		}
	})
}

func TestValidateConfigFlags(t *testing.T) {
	tests := []struct {
		name       string
		configFile string
		configURL  string
		wantErr    bool
	}{
		{"file only", "bikeflow.yml", "", false},
		{"url only", "", "https://example.com/bikeflow.yml", false},
		{"neither", "", "", true},
		{"both", "bikeflow.yml", "https://example.com/bikeflow.yml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfigFlags(tt.configFile, tt.configURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(0, "", DataConfig{Stations: "s.json", Trips: "t.csv"})
	if cfg.Server.Port != DefaultPort || cfg.Server.Env != DefaultEnv {
		t.Errorf("expected defaults, got %+v", cfg.Server)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
