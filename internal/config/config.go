package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/geokit/internal/domain"
	"github.com/kailas-cloud/geokit/internal/domain/cluster"
	"github.com/kailas-cloud/geokit/internal/domain/geo"
)

// Config holds the geokit API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Geometry GeometryConfig `yaml:"geometry"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// GeometryConfig holds limits applied around the geometry core.
type GeometryConfig struct {
	QuadTreeCapacity        int `yaml:"quadtree_capacity"`
	MaxPoints               int `yaml:"max_points"` // 0 = unlimited
	DefaultGeoHashPrecision int `yaml:"default_geohash_precision"`
	MaxZoom                 int `yaml:"max_zoom"`
	MaxClusterIndex         int `yaml:"max_cluster_index"`
}

// Limits converts the section into domain limits.
func (g GeometryConfig) Limits() domain.Limits {
	return domain.Limits{
		MaxPoints:               g.MaxPoints,
		QuadTreeCapacity:        g.QuadTreeCapacity,
		DefaultGeoHashPrecision: g.DefaultGeoHashPrecision,
		MaxZoom:                 g.MaxZoom,
		MaxClusterIndex:         g.MaxClusterIndex,
	}
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, applying
// defaults and validating the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	def := domain.DefaultLimits()
	if c.Geometry.QuadTreeCapacity <= 0 {
		c.Geometry.QuadTreeCapacity = def.QuadTreeCapacity
	}
	if c.Geometry.DefaultGeoHashPrecision <= 0 {
		c.Geometry.DefaultGeoHashPrecision = def.DefaultGeoHashPrecision
	}
	if c.Geometry.MaxZoom <= 0 {
		c.Geometry.MaxZoom = def.MaxZoom
	}
	if c.Geometry.MaxClusterIndex <= 0 {
		c.Geometry.MaxClusterIndex = def.MaxClusterIndex
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if c.Geometry.MaxPoints < 0 {
		errs = append(errs, fmt.Errorf("geometry.max_points must not be negative, got %d", c.Geometry.MaxPoints))
	}
	if p := c.Geometry.DefaultGeoHashPrecision; p < geo.MinGeoHashPrecision || p > geo.MaxGeoHashPrecision {
		errs = append(errs, fmt.Errorf("geometry.default_geohash_precision must be between %d and %d, got %d",
			geo.MinGeoHashPrecision, geo.MaxGeoHashPrecision, p))
	}
	if z := c.Geometry.MaxZoom; z > geo.MaxZoom {
		errs = append(errs, fmt.Errorf("geometry.max_zoom must be at most %d, got %d", geo.MaxZoom, z))
	}
	if m := c.Geometry.MaxClusterIndex; m < 0 || m > cluster.MaxIndex {
		errs = append(errs, fmt.Errorf("geometry.max_cluster_index must be between 0 and %d, got %d", cluster.MaxIndex, m))
	}
	return errors.Join(errs...)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// envVarRegex matches ${VAR} and ${VAR:-default}.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
