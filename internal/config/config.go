package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/geoharm/internal/field"
	"github.com/san-kum/geoharm/internal/gravity"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel   = "egm96-4"
	DefaultLatStep = 10.0
	DefaultLonStep = 10.0
	DefaultSamples = 64
)

type Config struct {
	Model     string  `yaml:"model"`
	ModelFile string  `yaml:"model_file,omitempty"`
	Degree    int     `yaml:"degree"`
	Order     int     `yaml:"order"`
	Altitude  float64 `yaml:"altitude"`
	LatStep   float64 `yaml:"lat_step"`
	LonStep   float64 `yaml:"lon_step"`
	Samples   int     `yaml:"samples"`
	LogLevel  string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    DefaultModel,
		Degree:   -1,
		Order:    field.AllOrders,
		LatStep:  DefaultLatStep,
		LonStep:  DefaultLonStep,
		Samples:  DefaultSamples,
		LogLevel: "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Model == "" && c.ModelFile == "":
		return errors.New("config: either model or model_file is required")
	case c.LatStep <= 0 || c.LatStep > 90:
		return fmt.Errorf("config: lat_step %g outside (0, 90]", c.LatStep)
	case c.LonStep <= 0 || c.LonStep > 180:
		return fmt.Errorf("config: lon_step %g outside (0, 180]", c.LonStep)
	case c.Samples < 2:
		return fmt.Errorf("config: samples %d must be at least 2", c.Samples)
	}
	return nil
}

// Limits converts the degree and order settings into evaluation limits.
func (c *Config) Limits() field.Limits {
	return field.Limits{Degree: c.Degree, Order: c.Order}
}

// LoadModel loads model_file when set, otherwise the named builtin.
func (c *Config) LoadModel() (*gravity.Model, error) {
	if c.ModelFile != "" {
		return gravity.Load(c.ModelFile)
	}
	return gravity.Builtin(c.Model)
}
