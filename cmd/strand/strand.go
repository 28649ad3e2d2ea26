// Package strandcmder
package strandcmder

import (
	"github.com/spf13/cobra"

	addcmder "github.com/hivemesh/strand/cmd/strand/add"
	clearcmder "github.com/hivemesh/strand/cmd/strand/clear"
	configcmder "github.com/hivemesh/strand/cmd/strand/config"
	searchcmder "github.com/hivemesh/strand/cmd/strand/search"
	statscmder "github.com/hivemesh/strand/cmd/strand/stats"
)

const strandLongDesc string = `Strand tethers local agent memory to a remote knowledge graph.

Writes are buffered locally and reconciled with the graph service in the
background; reads degrade to the local entity cache whenever the service
is unreachable.

  strand add       Buffer an episode for ingestion
  strand search    Search graph nodes or facts
  strand stats     Show cache and buffer statistics
  strand clear     Clear the graph and local state
  strand config    Manage configuration`

const strandShortDesc string = "Strand - Knowledge Graph Memory Adapter"

func NewStrandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strand",
		Short: strandShortDesc,
		Long:  strandLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override the .strand/ config directory")

	// Add subcommands
	cmd.AddCommand(addcmder.NewAddCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(statscmder.NewStatsCmd())
	cmd.AddCommand(clearcmder.NewClearCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())

	return cmd
}
