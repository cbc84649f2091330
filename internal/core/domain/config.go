package domain

import "time"

// ExtractorMode selects how raw local descriptions are produced.
type ExtractorMode string

const (
	// ExtractorCommand runs an external extractor binary per package.
	ExtractorCommand ExtractorMode = "command"
	// ExtractorDump reads a pre-extracted interface.json from the dataset.
	ExtractorDump ExtractorMode = "dump"
)

// TelemetryBackend selects the tracer implementation.
type TelemetryBackend string

const (
	// TelemetryNone disables tracing.
	TelemetryNone TelemetryBackend = "none"
	// TelemetryOTel records OpenTelemetry spans and reports finished packages to the logger.
	TelemetryOTel TelemetryBackend = "otel"
	// TelemetryProgrock records progrock vertices.
	TelemetryProgrock TelemetryBackend = "progrock"
)

// Config is the resolved configuration of a verification run.
type Config struct {
	Dataset   DatasetConfig
	Extractor ExtractorConfig
	RPC       RPCConfig
	Output    OutputConfig
	Run       RunConfig
	Telemetry TelemetryBackend
}

// DatasetConfig locates the package dataset.
type DatasetConfig struct {
	Root   string
	Layout string
}

// ExtractorConfig configures local extraction.
type ExtractorConfig struct {
	Mode    ExtractorMode
	Command []string
	Timeout time.Duration
}

// RPCConfig configures the fullnode client.
type RPCConfig struct {
	Enabled   bool
	URL       string
	Timeout   time.Duration
	Retries   int
	Backoff   time.Duration
	CacheSize int
}

// OutputConfig configures the artifacts of a run.
type OutputConfig struct {
	Dir           string
	Mode          OutputMode
	MaxMismatches int
}

// RunConfig configures the pipeline.
type RunConfig struct {
	Workers     int
	SampleSize  int
	MaxPackages int
	Resume      bool
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Root:   DefaultDatasetRoot,
			Layout: DefaultDatasetLayout,
		},
		Extractor: ExtractorConfig{
			Mode:    ExtractorDump,
			Timeout: 2 * time.Minute,
		},
		RPC: RPCConfig{
			Enabled:   true,
			URL:       DefaultRPCURL,
			Timeout:   30 * time.Second,
			Retries:   3,
			Backoff:   500 * time.Millisecond,
			CacheSize: 1024,
		},
		Output: OutputConfig{
			Dir:           DefaultOutputDir,
			Mode:          OutputDetailed,
			MaxMismatches: 200,
		},
		Run: RunConfig{
			Workers: 8,
		},
		Telemetry: TelemetryNone,
	}
}
