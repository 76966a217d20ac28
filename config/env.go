package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every override variable.
const EnvPrefix = "CITYSOLID_"

// ApplyEnv overlays CITYSOLID_* variables on c. Values come from files
// (read without touching the process environment) and then from the process
// environment, which wins. Missing files are an error; pass none to use the
// process environment only.
func (c *Config) ApplyEnv(files ...string) error {
	vars := map[string]string{}
	if len(files) > 0 {
		read, err := godotenv.Read(files...)
		if err != nil {
			return fmt.Errorf("failed to read env files: %w", err)
		}
		vars = read
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := vars[EnvPrefix+key]
		return v, ok
	}

	str := map[string]*string{
		"PRECISION_MODE":    &c.PrecisionMode,
		"SHAPE_FIX_LEVEL":   &c.ShapeFixLevel,
		"LOG_FILE":          &c.LogFile,
		"METRICS_NAMESPACE": &c.MetricsNamespace,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	floats := map[string]*float64{
		"SEW_TOLERANCE":          &c.SewTolerance,
		"INVALID_FACE_RATIO":     &c.InvalidFaceRatio,
		"RESEW_RELAX_MULTIPLIER": &c.ResewRelaxMultiplier,
	}
	for key, dst := range floats {
		if v, ok := lookup(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrEnv, EnvPrefix, key, v)
			}
			*dst = f
		}
	}

	if v, ok := lookup("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sWORKERS=%q", ErrEnv, EnvPrefix, v)
		}
		c.Workers = n
	}
	if v, ok := lookup("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sDEBUG=%q", ErrEnv, EnvPrefix, v)
		}
		c.Debug = b
	}

	c.normalize()
	return c.Validate()
}
