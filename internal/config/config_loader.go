package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"bikeflow.org/internal/report"
	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidateConfigFlags ensures that exactly one configuration source is specified:
// either a config file "--config-file" or a remote config URL "--config-url".
func ValidateConfigFlags(configFile, configURL string) error {
	if configFile == "" && configURL == "" {
		return fmt.Errorf("no configuration provided, either --config-file or --config-url must be specified")
	}
	if configFile != "" && configURL != "" {
		return fmt.Errorf("only one of --config-file or --config-url can be specified")
	}
	return nil
}

// LoadConfigFromFile reads a YAML configuration file from disk, applies
// defaults and validates it. Failures are reported to Sentry.
func LoadConfigFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  report.Tags("file_path", filePath),
			Level: sentry.LevelError,
		})
		return nil, err
	}

	cfg, err := parseConfig(data)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  report.Tags("file_path", filePath),
			Level: sentry.LevelError,
		})
		return nil, err
	}
	return cfg, nil
}

// LoadConfigFromURL fetches a YAML configuration from a remote HTTP(S) endpoint,
// using the provided client and optional basic authentication.
func LoadConfigFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string) (*Config, error) {
	cfg, err := loadConfigFromURL(ctx, client, url, authUser, authPass)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  report.Tags("config_url", url),
			Level: sentry.LevelError,
		})
		return nil, err
	}
	return cfg, nil
}

func loadConfigFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string) (*Config, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote config returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote config: %w", err)
	}
	return parseConfig(data)
}

// parseConfig unmarshals YAML, applies defaults and validates the result.
func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints, the timezone and lane city uniqueness.
func (cfg *Config) Validate() error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	seen := make(map[string]struct{}, len(cfg.Data.Lanes))
	for _, lane := range cfg.Data.Lanes {
		if _, dup := seen[lane.City]; dup {
			return fmt.Errorf("invalid configuration: duplicate lane city %q", lane.City)
		}
		seen[lane.City] = struct{}{}
	}
	return nil
}
