package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/hivemesh/strand/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the STRAND_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (STRAND_REMOTE_URL, STRAND_SYNC_AUTO, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: STRAND_ADAPTER_DEFAULT_GROUP_ID, etc.
	v.SetEnvPrefix("STRAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Adapter
	v.SetDefault("adapter.enabled", d.Adapter.Enabled)
	v.SetDefault("adapter.default_group_id", d.Adapter.DefaultGroupID)
	v.SetDefault("adapter.max_nodes", d.Adapter.MaxNodes)
	v.SetDefault("adapter.max_facts", d.Adapter.MaxFacts)

	// Sync
	v.SetDefault("sync.auto", d.Sync.Auto)
	v.SetDefault("sync.interval_seconds", d.Sync.IntervalSeconds)

	// Temporal
	v.SetDefault("temporal.enabled", d.Temporal.Enabled)
	v.SetDefault("temporal.retention_days", d.Temporal.RetentionDays)

	// Remote
	v.SetDefault("remote.transport", d.Remote.Transport)
	v.SetDefault("remote.command", d.Remote.Command)
	v.SetDefault("remote.url", d.Remote.URL)
	v.SetDefault("remote.invoke_timeout_seconds", d.Remote.InvokeTimeoutSeconds)

	// Events
	v.SetDefault("events.kafka_brokers", d.Events.KafkaBrokers)
	v.SetDefault("events.kafka_topic", d.Events.KafkaTopic)

	// Log
	v.SetDefault("log.debug", d.Log.Debug)
}

// FromViper materializes a Config from a viper instance. Explicit per-key
// reads keep the dotted keys in setViperDefaults as the single naming
// authority.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Version: v.GetInt("version"),
		Adapter: AdapterConfig{
			Enabled:        v.GetBool("adapter.enabled"),
			DefaultGroupID: v.GetString("adapter.default_group_id"),
			MaxNodes:       v.GetInt("adapter.max_nodes"),
			MaxFacts:       v.GetInt("adapter.max_facts"),
		},
		Sync: SyncConfig{
			Auto:            v.GetBool("sync.auto"),
			IntervalSeconds: v.GetInt("sync.interval_seconds"),
		},
		Temporal: TemporalConfig{
			Enabled:       v.GetBool("temporal.enabled"),
			RetentionDays: v.GetInt("temporal.retention_days"),
		},
		Remote: RemoteConfig{
			Transport:            v.GetString("remote.transport"),
			Command:              v.GetString("remote.command"),
			URL:                  v.GetString("remote.url"),
			InvokeTimeoutSeconds: v.GetInt("remote.invoke_timeout_seconds"),
		},
		Events: EventsConfig{
			KafkaBrokers: v.GetString("events.kafka_brokers"),
			KafkaTopic:   v.GetString("events.kafka_topic"),
		},
		Log: LogConfig{
			Debug: v.GetBool("log.debug"),
		},
	}
}
