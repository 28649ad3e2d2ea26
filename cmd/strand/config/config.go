// Package configcmder provides the config command for managing persistent
// strand configuration stored in the .strand/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent strand configuration.

Configuration is stored as config.toml in the .strand/ directory and
provides default values for command flags. CLI flags always take
precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  adapter.enabled, adapter.default_group_id, adapter.max_nodes, adapter.max_facts,
  sync.auto, sync.interval_seconds,
  temporal.enabled, temporal.retention_days,
  remote.transport, remote.command, remote.url, remote.invoke_timeout_seconds,
  events.kafka_brokers, events.kafka_topic,
  log.debug

Use subcommands to get, set, or list configuration values:
  strand config set <key> <value>    Set a configuration value
  strand config get <key>            Get a configuration value
  strand config list                 List all configuration values

Examples:
  strand config set remote.url http://localhost:8321/mcp
  strand config set sync.interval_seconds 60
  strand config get adapter.default_group_id
  strand config list`

const configShortDesc string = "Manage persistent strand configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
