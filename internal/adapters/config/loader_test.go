package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/adapters/config"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	t.Setenv(config.EnvDatasetRoot, "")
	t.Setenv(config.EnvRPCURL, "")

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	loader.EnvFile = ""
	return loader
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := newLoader(t).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
version: "1"
dataset:
  root: /data/sui-packages
extractor:
  mode: command
  command: ["move-iface", "--json"]
  timeout: 45s
rpc:
  enabled: false
  retries: 0
  cache_size: 16
output:
  dir: build/out
  mode: both
  max_mismatches: 0
run:
  workers: 2
  sample_size: 100
  resume: true
telemetry:
  backend: OTel
`)

	cfg, err := newLoader(t).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/sui-packages", cfg.Dataset.Root)
	assert.Equal(t, domain.DefaultDatasetLayout, cfg.Dataset.Layout)
	assert.Equal(t, domain.ExtractorCommand, cfg.Extractor.Mode)
	assert.Equal(t, []string{"move-iface", "--json"}, cfg.Extractor.Command)
	assert.Equal(t, 45*time.Second, cfg.Extractor.Timeout)
	assert.False(t, cfg.RPC.Enabled)
	assert.Equal(t, 0, cfg.RPC.Retries)
	assert.Equal(t, 16, cfg.RPC.CacheSize)
	assert.Equal(t, domain.DefaultRPCURL, cfg.RPC.URL)
	assert.Equal(t, "build/out", cfg.Output.Dir)
	assert.Equal(t, domain.OutputBoth, cfg.Output.Mode)
	assert.Equal(t, 0, cfg.Output.MaxMismatches)
	assert.Equal(t, 2, cfg.Run.Workers)
	assert.Equal(t, 100, cfg.Run.SampleSize)
	assert.True(t, cfg.Run.Resume)
	assert.Equal(t, domain.TelemetryOTel, cfg.Telemetry)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	loader := newLoader(t)
	t.Setenv(config.EnvDatasetRoot, "/mnt/packages")
	t.Setenv(config.EnvRPCURL, "http://localhost:9000")

	path := writeFile(t, "dataset:\n  root: /ignored\n")
	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/mnt/packages", cfg.Dataset.Root)
	assert.Equal(t, "http://localhost:9000", cfg.RPC.URL)
}

func TestLoad_EnvFile(t *testing.T) {
	loader := newLoader(t)
	require.NoError(t, os.Unsetenv(config.EnvDatasetRoot))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(config.EnvDatasetRoot+"=/from/dotenv\n"), domain.PrivateFilePerm))
	loader.EnvFile = envFile
	t.Cleanup(func() { _ = os.Unsetenv(config.EnvDatasetRoot) })

	cfg, err := loader.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.Dataset.Root)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"invalid yaml", "rpc: [", domain.ErrConfigParseFailed},
		{"unknown extractor mode", "extractor:\n  mode: wasm\n", domain.ErrConfigInvalid},
		{"command mode without command", "extractor:\n  mode: command\n", domain.ErrConfigInvalid},
		{"bad duration", "rpc:\n  timeout: soon\n", domain.ErrConfigInvalid},
		{"bad output mode", "output:\n  mode: verbose\n", domain.ErrConfigInvalid},
		{"zero workers", "run:\n  workers: 0\n", domain.ErrConfigInvalid},
		{"negative sample", "run:\n  sample_size: -1\n", domain.ErrConfigInvalid},
		{"unknown telemetry", "telemetry:\n  backend: jaeger\n", domain.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t).Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}
