// Package clearcmder provides the clear command for wiping the knowledge
// graph and local adapter state.
package clearcmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hivemesh/strand/cmd/strand/session"
	"github.com/hivemesh/strand/pkg/cliui"
	"github.com/hivemesh/strand/pkg/config"
)

const clearLongDesc string = `Clear the knowledge graph.

While connected this clears the remote graph first; a remote failure is
reported rather than hidden, since a silently failed clear would be
misleading. The local entity cache and write buffer are cleared in every
case.

Examples:
  strand clear --force`

const clearShortDesc string = "Clear the graph and local state"

func NewClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: clearShortDesc,
		Long:  clearLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("refusing to clear without --force")
			}
			debug, _ := cmd.Flags().GetBool("debug")
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}

			return runClear(v, debug)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm the destructive clear")

	return cmd
}

func runClear(v *viper.Viper, debug bool) error {
	ctx := context.Background()

	s, err := session.Open(ctx, v, debug)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	err = cliui.Step(os.Stdout, "Clearing knowledge graph", func() error {
		return s.Adapter.ClearGraph(ctx)
	})
	if err != nil {
		return fmt.Errorf("clearing graph: %w", err)
	}

	return nil
}
