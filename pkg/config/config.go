// Package config provides configuration loading and management for
// cryoalign. It handles loading configuration from YAML files and provides
// default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Geometry parameters describe the Fourier-domain image or volume the
	// demo driver builds and scores against.
	Geometry struct {
		// ImgX/ImgY/ImgZ are the extents of the reference and signal.
		// ImgZ=1 selects 2D data.
		ImgX int `yaml:"imgX"`
		ImgY int `yaml:"imgY"`
		ImgZ int `yaml:"imgZ"`

		// MaxR is the radial cutoff, in Fourier-index units, beyond which
		// samples are considered zero.
		MaxR int `yaml:"maxR"`

		// Ref3D selects a 3D reference volume; when false and ImgZ==1 the
		// reference is a 2D image.
		Ref3D bool `yaml:"ref3D"`
	} `yaml:"geometry"`

	// Search parameters control the coarse and fine search grids.
	Search struct {
		// TranslationRange is the maximum absolute pixel shift searched
		// along each axis; TranslationStep is the grid spacing within it.
		TranslationRange float64 `yaml:"translationRange"`
		TranslationStep  float64 `yaml:"translationStep"`

		// BlockSize and EulersPerBlock size the coarse kernel's
		// orientation-block grouping.
		BlockSize      int `yaml:"blockSize"`
		EulersPerBlock int `yaml:"eulersPerBlock"`

		// FineKeep is the number of translations per orientation kept
		// when the coarse pass's results are reduced into fine-search
		// jobs: the orientation's best-scoring translation and its
		// nearest neighbors in translation space.
		FineKeep int `yaml:"fineKeep"`

		// SumInit is the diff2 fine kernel's per-emitted-score bias.
		SumInit float64 `yaml:"sumInit"`

		// ExpLocalSqrtXi2 is accepted by both CC kernels for interface
		// parity with diff2 but never read by either.
		ExpLocalSqrtXi2 float64 `yaml:"expLocalSqrtXi2"`
	} `yaml:"search"`

	// Runtime parameters control the driver's parallel dispatch.
	Runtime struct {
		// NumWorkers specifies how many goroutines the driver fans work
		// out across.
		NumWorkers int `yaml:"numWorkers"`

		// Verbose controls the level of logging output.
		Verbose bool `yaml:"verbose"`
	} `yaml:"runtime"`

	// Output parameters control optional debug artifacts.
	Output struct {
		// SaveScoreGrids writes a JPEG heatmap of the coarse score grid
		// for each orientation.
		SaveScoreGrids bool `yaml:"saveScoreGrids"`

		// ScoreGridDir is the directory score-grid images are written to.
		ScoreGridDir string `yaml:"scoreGridDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Geometry.ImgX = 32
	cfg.Geometry.ImgY = 32
	cfg.Geometry.ImgZ = 1
	cfg.Geometry.MaxR = 12
	cfg.Geometry.Ref3D = false

	cfg.Search.TranslationRange = 4
	cfg.Search.TranslationStep = 1
	cfg.Search.BlockSize = 64
	cfg.Search.EulersPerBlock = 4
	cfg.Search.FineKeep = 3
	cfg.Search.SumInit = 0
	cfg.Search.ExpLocalSqrtXi2 = 0

	cfg.Runtime.NumWorkers = runtime.NumCPU()
	cfg.Runtime.Verbose = true

	cfg.Output.SaveScoreGrids = false
	cfg.Output.ScoreGridDir = "score_grids"

	return cfg
}

// LoadConfig loads configuration from a YAML file. If the file doesn't
// exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
