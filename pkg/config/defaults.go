package config

const (
	defaultGroupID       = "default"
	defaultMaxNodes      = 10
	defaultMaxFacts      = 10
	defaultSyncInterval  = 30
	defaultRetentionDays = 30
	defaultTransport     = "stdio"
	defaultInvokeTimeout = 30
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Adapter: AdapterConfig{
			Enabled:        true,
			DefaultGroupID: defaultGroupID,
			MaxNodes:       defaultMaxNodes,
			MaxFacts:       defaultMaxFacts,
		},
		Sync: SyncConfig{
			Auto:            true,
			IntervalSeconds: defaultSyncInterval,
		},
		Temporal: TemporalConfig{
			Enabled:       true,
			RetentionDays: defaultRetentionDays,
		},
		Remote: RemoteConfig{
			Transport:            defaultTransport,
			InvokeTimeoutSeconds: defaultInvokeTimeout,
		},
	}
}
