package config

// Runfile represents the structure of the moveiface.yaml configuration file.
// Every field is optional; absent fields keep their defaults.
type Runfile struct {
	Version   string        `yaml:"version"`
	Dataset   *DatasetDTO   `yaml:"dataset"`
	Extractor *ExtractorDTO `yaml:"extractor"`
	RPC       *RPCDTO       `yaml:"rpc"`
	Output    *OutputDTO    `yaml:"output"`
	Run       *RunDTO       `yaml:"run"`
	Telemetry *TelemetryDTO `yaml:"telemetry"`
}

// DatasetDTO locates the package dataset.
type DatasetDTO struct {
	Root   string `yaml:"root"`
	Layout string `yaml:"layout"`
}

// ExtractorDTO configures local extraction.
type ExtractorDTO struct {
	Mode    string   `yaml:"mode"`
	Command []string `yaml:"command"`
	Timeout string   `yaml:"timeout"`
}

// RPCDTO configures the fullnode client.
type RPCDTO struct {
	Enabled   *bool  `yaml:"enabled"`
	URL       string `yaml:"url"`
	Timeout   string `yaml:"timeout"`
	Retries   *int   `yaml:"retries"`
	Backoff   string `yaml:"backoff"`
	CacheSize *int   `yaml:"cache_size"`
}

// OutputDTO configures the run artifacts.
type OutputDTO struct {
	Dir           string `yaml:"dir"`
	Mode          string `yaml:"mode"`
	MaxMismatches *int   `yaml:"max_mismatches"`
}

// RunDTO configures the pipeline.
type RunDTO struct {
	Workers     *int  `yaml:"workers"`
	SampleSize  *int  `yaml:"sample_size"`
	MaxPackages *int  `yaml:"max_packages"`
	Resume      *bool `yaml:"resume"`
}

// TelemetryDTO selects the tracer.
type TelemetryDTO struct {
	Backend string `yaml:"backend"`
}
