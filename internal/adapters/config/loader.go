// Package config loads the run configuration from moveiface.yaml, .env and the environment.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file.
const (
	EnvDatasetRoot = "SUI_PACKAGES_DIR"
	EnvRPCURL      = "MOVEIFACE_RPC_URL"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// EnvFile is loaded into the process environment before overrides are read.
	// Variables that are already set win.
	EnvFile string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, EnvFile: ".env"}
}

// Load reads path (domain.ConfigFileName when empty), applies environment
// overrides and validates the result. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Config, error) {
	if l.EnvFile != "" {
		if _, err := os.Stat(l.EnvFile); err == nil {
			if err := godotenv.Load(l.EnvFile); err != nil {
				l.Logger.Warn("ignoring unreadable " + l.EnvFile + ": " + err.Error())
			}
		}
	}

	if path == "" {
		path = domain.ConfigFileName
	}

	cfg := domain.DefaultConfig()
	var runfile Runfile
	found, err := readAndUnmarshalYAML(path, &runfile)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if found {
		if err := apply(cfg, &runfile); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	if root := strings.TrimSpace(os.Getenv(EnvDatasetRoot)); root != "" {
		cfg.Dataset.Root = root
	}
	if url := strings.TrimSpace(os.Getenv(EnvRPCURL)); url != "" {
		cfg.RPC.URL = url
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) (bool, error) {
	// #nosec G304 -- configPath is chosen by the operator
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return false, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return true, nil
}

//nolint:cyclop // one branch per optional field
func apply(cfg *domain.Config, rf *Runfile) error {
	if d := rf.Dataset; d != nil {
		cfg.Dataset.Root = firstNonEmpty(d.Root, cfg.Dataset.Root)
		cfg.Dataset.Layout = firstNonEmpty(d.Layout, cfg.Dataset.Layout)
	}

	if e := rf.Extractor; e != nil {
		if e.Mode != "" {
			cfg.Extractor.Mode = domain.ExtractorMode(strings.ToLower(e.Mode))
		}
		if len(e.Command) > 0 {
			cfg.Extractor.Command = e.Command
		}
		if err := parseDuration("extractor.timeout", e.Timeout, &cfg.Extractor.Timeout); err != nil {
			return err
		}
	}

	if r := rf.RPC; r != nil {
		if r.Enabled != nil {
			cfg.RPC.Enabled = *r.Enabled
		}
		cfg.RPC.URL = firstNonEmpty(r.URL, cfg.RPC.URL)
		if err := parseDuration("rpc.timeout", r.Timeout, &cfg.RPC.Timeout); err != nil {
			return err
		}
		if err := parseDuration("rpc.backoff", r.Backoff, &cfg.RPC.Backoff); err != nil {
			return err
		}
		setInt(&cfg.RPC.Retries, r.Retries)
		setInt(&cfg.RPC.CacheSize, r.CacheSize)
	}

	if o := rf.Output; o != nil {
		cfg.Output.Dir = firstNonEmpty(o.Dir, cfg.Output.Dir)
		if o.Mode != "" {
			mode, err := domain.ParseOutputMode(o.Mode)
			if err != nil {
				return err
			}
			cfg.Output.Mode = mode
		}
		setInt(&cfg.Output.MaxMismatches, o.MaxMismatches)
	}

	if r := rf.Run; r != nil {
		setInt(&cfg.Run.Workers, r.Workers)
		setInt(&cfg.Run.SampleSize, r.SampleSize)
		setInt(&cfg.Run.MaxPackages, r.MaxPackages)
		if r.Resume != nil {
			cfg.Run.Resume = *r.Resume
		}
	}

	if t := rf.Telemetry; t != nil && t.Backend != "" {
		cfg.Telemetry = domain.TelemetryBackend(strings.ToLower(t.Backend))
	}
	return nil
}

// Validate checks the invariants of a resolved configuration.
func Validate(cfg *domain.Config) error {
	switch cfg.Extractor.Mode {
	case domain.ExtractorDump:
	case domain.ExtractorCommand:
		if len(cfg.Extractor.Command) == 0 {
			return zerr.With(domain.ErrConfigInvalid, "extractor.command", "required in command mode")
		}
	default:
		return zerr.With(domain.ErrConfigInvalid, "extractor.mode", string(cfg.Extractor.Mode))
	}

	switch cfg.Telemetry {
	case domain.TelemetryNone, domain.TelemetryOTel, domain.TelemetryProgrock:
	default:
		return zerr.With(domain.ErrConfigInvalid, "telemetry.backend", string(cfg.Telemetry))
	}

	if _, err := domain.ParseOutputMode(string(cfg.Output.Mode)); err != nil {
		return err
	}

	for _, check := range []struct {
		key string
		ok  bool
	}{
		{"dataset.root", cfg.Dataset.Root != ""},
		{"output.dir", cfg.Output.Dir != ""},
		{"extractor.timeout", cfg.Extractor.Timeout > 0},
		{"rpc.url", !cfg.RPC.Enabled || cfg.RPC.URL != ""},
		{"rpc.timeout", cfg.RPC.Timeout > 0},
		{"rpc.retries", cfg.RPC.Retries >= 0},
		{"rpc.backoff", cfg.RPC.Backoff >= 0},
		{"rpc.cache_size", cfg.RPC.CacheSize >= 0},
		{"output.max_mismatches", cfg.Output.MaxMismatches >= 0},
		{"run.workers", cfg.Run.Workers >= 1},
		{"run.sample_size", cfg.Run.SampleSize >= 0},
		{"run.max_packages", cfg.Run.MaxPackages >= 0},
	} {
		if !check.ok {
			return zerr.With(domain.ErrConfigInvalid, "field", check.key)
		}
	}
	return nil
}

func parseDuration(key, raw string, target *time.Duration) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return zerr.With(zerr.With(domain.ErrConfigInvalid, "field", key), "value", raw)
	}
	*target = d
	return nil
}

func setInt(target, value *int) {
	if value != nil {
		*target = *value
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
