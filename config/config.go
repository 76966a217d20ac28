package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/citysolid/repair"
	"github.com/katalvlaran/citysolid/shell"
	"github.com/katalvlaran/citysolid/tolerance"
)

// Config holds the conversion settings.
type Config struct {
	PrecisionMode string `yaml:"precision_mode" validate:"oneof=auto standard high maximum ultra"`
	ShapeFixLevel string `yaml:"shape_fix_level" validate:"oneof=minimal standard aggressive ultra"`
	// SewTolerance overrides the per-building tolerance when positive.
	SewTolerance float64 `yaml:"sew_tolerance" validate:"gte=0"`
	Debug        bool    `yaml:"debug"`
	// Workers bounds concurrent buildings; 0 uses GOMAXPROCS.
	Workers              int     `yaml:"workers" validate:"gte=0"`
	InvalidFaceRatio     float64 `yaml:"invalid_face_ratio_threshold" validate:"gt=0,lte=1"`
	ResewRelaxMultiplier float64 `yaml:"resew_relax_multiplier" validate:"gt=1"`
	LogFile              string  `yaml:"log_file"`
	MetricsNamespace     string  `yaml:"metrics_namespace" validate:"omitempty,max=64"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		PrecisionMode:        string(tolerance.Standard),
		ShapeFixLevel:        repair.Standard.String(),
		InvalidFaceRatio:     shell.InvalidFaceRatioThreshold,
		ResewRelaxMultiplier: shell.ResewRelaxMultiplier,
		MetricsNamespace:     "citysolid",
	}
}

// Parse decodes data over the defaults, normalizes and validates.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads path, expands environment references and parses the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

func (c *Config) normalize() {
	c.PrecisionMode = strings.ToLower(strings.TrimSpace(c.PrecisionMode))
	if c.PrecisionMode == "" {
		c.PrecisionMode = string(tolerance.Standard)
	}
	c.ShapeFixLevel = strings.ToLower(strings.TrimSpace(c.ShapeFixLevel))
	if c.ShapeFixLevel == "" {
		c.ShapeFixLevel = repair.Standard.String()
	}
}

// Validate checks every field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Level returns the shape fix level. Validated configs never fail here;
// anything else falls back to standard.
func (c *Config) Level() repair.Level {
	l, err := repair.ParseLevel(c.ShapeFixLevel)
	if err != nil {
		return repair.Standard
	}
	return l
}

// Mode returns the precision mode; "auto" maps to standard.
func (c *Config) Mode() tolerance.Mode {
	if m := tolerance.ParseMode(c.PrecisionMode); m.Known() {
		return m
	}
	return tolerance.Standard
}
