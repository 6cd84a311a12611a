// Package config loads the runtime configuration of the Harmony shared
// library.
//
// Configuration comes from an optional YAML file named by HARMONY_FFI_CONFIG,
// overlaid with individual environment variables. Everything is optional:
// with nothing set the library logs nothing and loads vocabularies through
// tiktoken-go's default loader.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigFile = "HARMONY_FFI_CONFIG"
	EnvLogLevel   = "HARMONY_FFI_LOG_LEVEL"
	EnvLogFile    = "HARMONY_FFI_LOG_FILE"
	EnvVocabDir   = "HARMONY_FFI_VOCAB_DIR"
)

// Config is the library configuration.
type Config struct {
	// LogLevel enables logging at the given level (debug, info, warn, error).
	// Empty disables logging.
	LogLevel string `yaml:"log_level"`

	// LogFile receives log output. Empty means stderr.
	LogFile string `yaml:"log_file"`

	// Vocab configures offline vocabulary files.
	Vocab VocabConfig `yaml:"vocab"`
}

// VocabConfig configures where BPE rank files are read from.
type VocabConfig struct {
	// Dir holds rank files named after their download URL, for example
	// o200k_base.tiktoken or o200k_base.tiktoken.zst. Empty disables offline
	// loading.
	Dir string `yaml:"dir"`

	// BLAKE3 maps a rank file name to the hex BLAKE3-256 digest of its
	// uncompressed contents.
	BLAKE3 map[string]string `yaml:"blake3"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{}
}

// Load reads the configuration file named by HARMONY_FFI_CONFIG, if any, then
// applies environment overrides and validates the result.
//
// getenv is usually os.Getenv.
func Load(getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads and validates a configuration file without consulting the
// environment.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	//nolint:gosec // Loading config from a user-specified path is intentional.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := getenv(EnvVocabDir); v != "" {
		c.Vocab.Dir = v
	}
}

// Validate reports every problem with the configuration.
func (c *Config) Validate() error {
	var err error

	if c.LogLevel != "" {
		if _, perr := zapcore.ParseLevel(c.LogLevel); perr != nil {
			err = multierr.Append(err, fmt.Errorf("log_level: %w", perr))
		}
	}

	if len(c.Vocab.BLAKE3) > 0 && c.Vocab.Dir == "" {
		err = multierr.Append(err, errors.New("vocab.blake3 is set but vocab.dir is empty"))
	}
	for name, digest := range c.Vocab.BLAKE3 {
		if _, derr := DecodeDigest(digest); derr != nil {
			err = multierr.Append(err, fmt.Errorf("vocab.blake3[%s]: %w", name, derr))
		}
	}

	return err
}

// DecodeDigest parses a hex BLAKE3-256 digest.
func DecodeDigest(digest string) ([32]byte, error) {
	var sum [32]byte
	raw, err := hex.DecodeString(strings.TrimSpace(digest))
	if err != nil {
		return sum, fmt.Errorf("invalid hex digest: %w", err)
	}
	if len(raw) != len(sum) {
		return sum, fmt.Errorf("digest is %d bytes, want %d", len(raw), len(sum))
	}
	copy(sum[:], raw)
	return sum, nil
}

// Logger builds the logger described by the configuration. With no log level
// it returns a no-op logger.
func (c *Config) Logger() (*zap.Logger, error) {
	if c.LogLevel == "" {
		return zap.NewNop(), nil
	}

	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log_level: %w", err)
	}

	output := "stderr"
	if c.LogFile != "" {
		output = c.LogFile
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{output}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l.Named("harmonyffi"), nil
}
