package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/hivemesh/strand/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// v0 is the alpha version of the config
	v0 = 0

	// CurrentV is the currently supported version, points to v0
	CurrentV = v0
)

// Configer loads and saves the config.toml in the resolved .strand/
// directory.
type Configer struct {
	ddm        *dotdir.Manager
	targetPath string
}

func NewConfiger(override string) (*Configer, error) {
	cfger := &Configer{}

	cfger.ddm = dotdir.NewManager()
	target, err := cfger.ddm.Target(override)
	if err != nil {
		return nil, err
	}

	// If no .strand/ directory was resolved, targetPath stays empty;
	// LoadConfig will return defaults and SaveConfig will error clearly.
	if target == "" {
		return cfger, nil
	}

	path := filepath.Join(target, configFile)
	_, err = os.Stat(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Always set targetPath when the directory exists so SaveConfig
	// can create or overwrite the file.
	cfger.targetPath = path

	return cfger, nil
}

// ValidConfigKeys returns all supported configuration key names in a
// stable order matching the TOML section layout.
func ValidConfigKeys() []string {
	ordered := []string{
		"adapter.enabled",
		"adapter.default_group_id",
		"adapter.max_nodes",
		"adapter.max_facts",
		"sync.auto",
		"sync.interval_seconds",
		"temporal.enabled",
		"temporal.retention_days",
		"remote.transport",
		"remote.command",
		"remote.url",
		"remote.invoke_timeout_seconds",
		"events.kafka_brokers",
		"events.kafka_topic",
		"log.debug",
	}

	// Sanity: only return keys that actually exist in the map, then append
	// any map keys missing from the ordered list.
	result := make([]string, 0, len(configKeys))
	seen := make(map[string]bool, len(configKeys))
	for _, k := range ordered {
		if _, ok := configKeys[k]; ok {
			result = append(result, k)
			seen[k] = true
		}
	}
	for k := range configKeys {
		if !seen[k] {
			result = append(result, k)
		}
	}

	return result
}

// IsValidConfigKey returns true if the given key is a supported configuration key.
func IsValidConfigKey(key string) bool {
	_, ok := configKeys[key]
	return ok
}

func (c *Configer) GetTarget() string {
	return c.targetPath
}

// LoadConfig loads the configuration from config.toml in the target
// .strand/ directory. If the file does not exist, returns NewDefaultConfig()
// so callers always receive a fully-populated Config. Fields explicitly set
// in the file override the defaults.
func (c *Configer) LoadConfig() (*Config, error) {
	if c.targetPath == "" {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(c.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := ParseConfigTOML(data)
	if err != nil {
		return nil, err
	}

	if cfg.Version > CurrentV {
		return nil, fmt.Errorf("unsupported config version: %d", cfg.Version)
	}

	// Merge in defaults: fill in any zero-value fields from the loaded config
	applyDefaults(cfg)

	return cfg, nil
}

// ParseConfigTOML decodes raw TOML bytes into a Config.
func ParseConfigTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// applyDefaults fills zero-value fields in cfg with values from
// NewDefaultConfig(). Booleans are left alone: false is a meaningful
// setting for every bool key.
func applyDefaults(cfg *Config) {
	defaults := NewDefaultConfig()

	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}

	if cfg.Adapter.DefaultGroupID == "" {
		cfg.Adapter.DefaultGroupID = defaults.Adapter.DefaultGroupID
	}
	if cfg.Adapter.MaxNodes == 0 {
		cfg.Adapter.MaxNodes = defaults.Adapter.MaxNodes
	}
	if cfg.Adapter.MaxFacts == 0 {
		cfg.Adapter.MaxFacts = defaults.Adapter.MaxFacts
	}

	if cfg.Sync.IntervalSeconds == 0 {
		cfg.Sync.IntervalSeconds = defaults.Sync.IntervalSeconds
	}

	if cfg.Temporal.RetentionDays == 0 {
		cfg.Temporal.RetentionDays = defaults.Temporal.RetentionDays
	}

	if cfg.Remote.Transport == "" {
		cfg.Remote.Transport = defaults.Remote.Transport
	}
	if cfg.Remote.InvokeTimeoutSeconds == 0 {
		cfg.Remote.InvokeTimeoutSeconds = defaults.Remote.InvokeTimeoutSeconds
	}
}

// SaveConfig persists the configuration to config.toml in the target
// .strand/ directory.
func (c *Configer) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save nil config")
	}

	if c.targetPath == "" {
		return errors.New("cannot save empty target path")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(c.targetPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// SetConfigValue loads the config, sets the given key to the given value, and saves it.
// Returns an error if the key is not a valid config key.
func (c *Configer) SetConfigValue(key string, value string) error {
	info, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	if err := info.set(cfg, value); err != nil {
		return err
	}

	return c.SaveConfig(cfg)
}

// GetConfigValue loads the config and returns the string representation of the given key.
// Returns an error if the key is not a valid config key.
func (c *Configer) GetConfigValue(key string) (string, error) {
	info, ok := configKeys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key: %q", key)
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		return "", err
	}

	return info.get(cfg), nil
}
