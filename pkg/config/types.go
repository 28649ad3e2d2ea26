package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent strand configuration stored as
// config.toml in the .strand/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version  int            `toml:"version"`
	Adapter  AdapterConfig  `toml:"adapter"`
	Sync     SyncConfig     `toml:"sync"`
	Temporal TemporalConfig `toml:"temporal"`
	Remote   RemoteConfig   `toml:"remote"`
	Events   EventsConfig   `toml:"events"`
	Log      LogConfig      `toml:"log"`
}

// AdapterConfig holds the memory-adapter settings.
type AdapterConfig struct {
	// Enabled gates the whole adapter; when false the CLI refuses to run
	// graph operations.
	Enabled bool `toml:"enabled"`

	// DefaultGroupID scopes episodes and searches when no group is given.
	DefaultGroupID string `toml:"default_group_id,omitempty"`

	// MaxNodes and MaxFacts are advisory sizing hints passed to the remote
	// search tools and used as the fallback-search result cap. They do not
	// trigger local eviction.
	MaxNodes int `toml:"max_nodes,omitempty"`
	MaxFacts int `toml:"max_facts,omitempty"`
}

// SyncConfig holds the periodic write-buffer reconciliation settings.
type SyncConfig struct {
	Auto            bool `toml:"auto"`
	IntervalSeconds int  `toml:"interval_seconds,omitempty"`
}

// TemporalConfig holds the fact-validity tracking settings.
type TemporalConfig struct {
	Enabled bool `toml:"enabled"`

	// RetentionDays is an advisory hint for the remote service; the
	// adapter itself never expires cached knowledge.
	RetentionDays int `toml:"retention_days,omitempty"`
}

// RemoteConfig holds the MCP connection settings for the knowledge-graph
// service.
type RemoteConfig struct {
	// Transport is "stdio" or "http".
	Transport string `toml:"transport,omitempty"`

	// Command launches the MCP server for stdio transport.
	Command string `toml:"command,omitempty"`

	// URL is the streamable-HTTP endpoint for http transport.
	URL string `toml:"url,omitempty"`

	// InvokeTimeoutSeconds bounds each remote tool call.
	InvokeTimeoutSeconds int `toml:"invoke_timeout_seconds,omitempty"`
}

// EventsConfig holds the optional external event-sink settings. When
// KafkaBrokers is empty no sink is attached.
type EventsConfig struct {
	// KafkaBrokers is a comma-separated bootstrap broker list.
	KafkaBrokers string `toml:"kafka_brokers,omitempty"`
	KafkaTopic   string `toml:"kafka_topic,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `toml:"debug"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"adapter.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Adapter.Enabled) },
		set: func(c *Config, v string) error { return setBool(&c.Adapter.Enabled, "adapter.enabled", v) },
	},
	"adapter.default_group_id": {
		get: func(c *Config) string { return c.Adapter.DefaultGroupID },
		set: func(c *Config, v string) error { c.Adapter.DefaultGroupID = v; return nil },
	},
	"adapter.max_nodes": {
		get: func(c *Config) string { return strconv.Itoa(c.Adapter.MaxNodes) },
		set: func(c *Config, v string) error { return setInt(&c.Adapter.MaxNodes, "adapter.max_nodes", v) },
	},
	"adapter.max_facts": {
		get: func(c *Config) string { return strconv.Itoa(c.Adapter.MaxFacts) },
		set: func(c *Config, v string) error { return setInt(&c.Adapter.MaxFacts, "adapter.max_facts", v) },
	},
	"sync.auto": {
		get: func(c *Config) string { return strconv.FormatBool(c.Sync.Auto) },
		set: func(c *Config, v string) error { return setBool(&c.Sync.Auto, "sync.auto", v) },
	},
	"sync.interval_seconds": {
		get: func(c *Config) string { return strconv.Itoa(c.Sync.IntervalSeconds) },
		set: func(c *Config, v string) error { return setInt(&c.Sync.IntervalSeconds, "sync.interval_seconds", v) },
	},
	"temporal.enabled": {
		get: func(c *Config) string { return strconv.FormatBool(c.Temporal.Enabled) },
		set: func(c *Config, v string) error { return setBool(&c.Temporal.Enabled, "temporal.enabled", v) },
	},
	"temporal.retention_days": {
		get: func(c *Config) string { return strconv.Itoa(c.Temporal.RetentionDays) },
		set: func(c *Config, v string) error { return setInt(&c.Temporal.RetentionDays, "temporal.retention_days", v) },
	},
	"remote.transport": {
		get: func(c *Config) string { return c.Remote.Transport },
		set: func(c *Config, v string) error { c.Remote.Transport = v; return nil },
	},
	"remote.command": {
		get: func(c *Config) string { return c.Remote.Command },
		set: func(c *Config, v string) error { c.Remote.Command = v; return nil },
	},
	"remote.url": {
		get: func(c *Config) string { return c.Remote.URL },
		set: func(c *Config, v string) error { c.Remote.URL = v; return nil },
	},
	"remote.invoke_timeout_seconds": {
		get: func(c *Config) string { return strconv.Itoa(c.Remote.InvokeTimeoutSeconds) },
		set: func(c *Config, v string) error {
			return setInt(&c.Remote.InvokeTimeoutSeconds, "remote.invoke_timeout_seconds", v)
		},
	},
	"events.kafka_brokers": {
		get: func(c *Config) string { return c.Events.KafkaBrokers },
		set: func(c *Config, v string) error { c.Events.KafkaBrokers = v; return nil },
	},
	"events.kafka_topic": {
		get: func(c *Config) string { return c.Events.KafkaTopic },
		set: func(c *Config, v string) error { c.Events.KafkaTopic = v; return nil },
	},
	"log.debug": {
		get: func(c *Config) string { return strconv.FormatBool(c.Log.Debug) },
		set: func(c *Config, v string) error { return setBool(&c.Log.Debug, "log.debug", v) },
	},
}

func setBool(target *bool, key, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*target = b
	return nil
}

func setInt(target *int, key, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*target = n
	return nil
}
