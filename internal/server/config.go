package server

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/outbreak-forecast/internal/config"
	"github.com/iwvelando/outbreak-forecast/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config holds the dashboard server settings read from server-config.yaml.
type Config struct {
	Address string `yaml:"address"`
	// MaxMessageSize limits a single live feed control message, e.g. "4K".
	MaxMessageSize string `yaml:"maxMessageSize"`
	// SimulationConfig names the simulation config served when the command
	// line does not choose one. Relative paths are resolved against the
	// directory holding the server config.
	SimulationConfig string               `yaml:"simulationConfig"`
	Logging          config.LoggingConfig `yaml:"logging"`

	messageLimit int64
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
}

// DefaultConfig returns the settings used when no server config file exists.
func DefaultConfig() *Config {
	return &Config{
		Address:        constants.DefaultServerAddress,
		MaxMessageSize: strconv.FormatInt(constants.DefaultMaxMessageSizeBytes, 10),
		messageLimit:   constants.DefaultMaxMessageSizeBytes,
	}
}

// LoadConfig reads the server configuration at path. A missing file yields
// DefaultConfig. Unknown keys are rejected, and a configured simulation
// config must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open server config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}

	if err := cfg.resolve(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("server config %s: %w", path, err)
	}
	return cfg, nil
}

// MessageLimit returns the read limit applied to live feed clients.
func (c *Config) MessageLimit() int64 {
	return c.messageLimit
}

func (c *Config) resolve(baseDir string) error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	limit, err := ParseSize(c.MaxMessageSize)
	if err != nil {
		return fmt.Errorf("maxMessageSize: %w", err)
	}
	if limit < constants.MinMessageSizeBytes || limit > constants.MaxMessageSizeBytes {
		return fmt.Errorf("maxMessageSize %q must be between %d and %d bytes",
			c.MaxMessageSize, constants.MinMessageSizeBytes, constants.MaxMessageSizeBytes)
	}
	c.messageLimit = limit

	if c.SimulationConfig == "" {
		return nil
	}
	if !filepath.IsAbs(c.SimulationConfig) {
		c.SimulationConfig = filepath.Join(baseDir, c.SimulationConfig)
	}
	info, err := os.Stat(c.SimulationConfig)
	if err != nil {
		return fmt.Errorf("simulationConfig: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("simulationConfig %s is a directory", c.SimulationConfig)
	}
	return nil
}

// ParseSize converts a byte count with an optional B, K(B) or M(B) suffix
// into bytes. An empty value selects the default live feed limit.
func ParseSize(value string) (int64, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(value))
	if trimmed == "" {
		return constants.DefaultMaxMessageSizeBytes, nil
	}

	digits := strings.TrimRightFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	unit := strings.TrimSpace(trimmed[len(digits):])
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q", unit)
	}

	n, err := strconv.ParseInt(strings.TrimSpace(digits), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}
	if n < 0 || n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q out of range", value)
	}
	return n * multiplier, nil
}
