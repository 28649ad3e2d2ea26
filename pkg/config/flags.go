package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --group
// on both "strand add" and "strand search").
type Flag struct {
	// Name is the long flag name (e.g. "group").
	Name string

	// Shorthand is the one-letter short flag (e.g. "g"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "adapter.default_group_id").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag registry keys to Flag structs.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddIntFlag, and
// BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagGroup         = "group"
	FlagMaxNodes      = "max-nodes"
	FlagMaxFacts      = "max-facts"
	FlagTransport     = "transport"
	FlagCommand       = "command"
	FlagURL           = "url"
	FlagInvokeTimeout = "invoke-timeout"
)

// DefaultFlagSet returns the flag registry shared by the strand commands.
func DefaultFlagSet() FlagSet {
	return FlagSet{
		FlagGroup: {
			Name:        "group",
			Shorthand:   "g",
			ViperKey:    "adapter.default_group_id",
			Description: "Group id scoping the operation",
		},
		FlagMaxNodes: {
			Name:        "max-nodes",
			ViperKey:    "adapter.max_nodes",
			Description: "Maximum nodes returned by a search",
		},
		FlagMaxFacts: {
			Name:        "max-facts",
			ViperKey:    "adapter.max_facts",
			Description: "Maximum facts returned by a search",
		},
		FlagTransport: {
			Name:        "transport",
			ViperKey:    "remote.transport",
			Description: "Remote MCP transport (stdio or http)",
		},
		FlagCommand: {
			Name:        "command",
			ViperKey:    "remote.command",
			Description: "Launch command for the stdio MCP server",
		},
		FlagURL: {
			Name:        "url",
			ViperKey:    "remote.url",
			Description: "Endpoint for the streamable-HTTP MCP server",
		},
		FlagInvokeTimeout: {
			Name:        "invoke-timeout",
			ViperKey:    "remote.invoke_timeout_seconds",
			Description: "Per-call timeout for remote tool invocations, in seconds",
		},
	}
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultString(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().StringVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().StringVar(target, def.Name, defaultVal, def.Description)
	}
}

// AddIntFlag registers an int flag on cmd from the given FlagSet.
func AddIntFlag(cmd *cobra.Command, fs FlagSet, key string, target *int) {
	def, ok := fs[key]
	if !ok {
		return
	}

	defaultVal := defaultInt(def.ViperKey)
	if def.Shorthand != "" {
		cmd.Flags().IntVarP(target, def.Name, def.Shorthand, defaultVal, def.Description)
	} else {
		cmd.Flags().IntVar(target, def.Name, defaultVal, def.Description)
	}
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this after InitViper to connect flags to the
// viper precedence chain (flag > env > config file > default).
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	v := viper.New()
	setViperDefaults(v)
	return v.GetString(viperKey)
}

// defaultInt returns the default int value for a viper key from NewDefaultConfig.
func defaultInt(viperKey string) int {
	v := viper.New()
	setViperDefaults(v)
	return v.GetInt(viperKey)
}
