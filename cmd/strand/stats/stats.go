// Package statscmder provides the stats command for inspecting the
// adapter's cache and buffer state.
package statscmder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hivemesh/strand/cmd/strand/session"
	"github.com/hivemesh/strand/pkg/cliui"
	"github.com/hivemesh/strand/pkg/config"
)

const statsLongDesc string = `Show adapter statistics.

Reports cached node and edge counts, the number of buffered episodes
awaiting delivery, and whether the remote graph service was reachable.

Examples:
  strand stats`

const statsShortDesc string = "Show cache and buffer statistics"

func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: statsShortDesc,
		Long:  statsLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			return runStats(v, debug)
		},
	}

	return cmd
}

func runStats(v *viper.Viper, debug bool) error {
	ctx := context.Background()

	s, err := session.Open(ctx, v, debug)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	stats := s.Adapter.Statistics()

	connMark := cliui.FailMark
	if stats.IsConnected {
		connMark = cliui.SuccessMark
	}

	fmt.Printf("\n  %s %s\n", cliui.KeyStyle.Render("Connected:      "), connMark)
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Cached nodes:   "), strconv.Itoa(stats.NodeCount))
	fmt.Printf("  %s %s\n", cliui.KeyStyle.Render("Cached edges:   "), strconv.Itoa(stats.EdgeCount))
	fmt.Printf("  %s %s\n\n", cliui.KeyStyle.Render("Queued episodes:"), strconv.Itoa(stats.QueuedEpisodes))

	return nil
}
