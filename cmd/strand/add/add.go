// Package addcmder provides the add command for buffering an episode into
// the knowledge graph.
package addcmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hivemesh/strand/cmd/strand/session"
	"github.com/hivemesh/strand/pkg/adapter"
	"github.com/hivemesh/strand/pkg/cliui"
	"github.com/hivemesh/strand/pkg/config"
)

const addLongDesc string = `Buffer an episode of knowledge for ingestion.

The episode is appended to its group's write queue immediately. When the
remote graph service is reachable it is also delivered right away;
otherwise it waits for the next sync pass.

Examples:
  strand add "meeting-notes" "Alice now leads the billing team"
  strand add deploy-log "v2 rollout completed" --group ops --source message`

const addShortDesc string = "Buffer an episode for ingestion"

func NewAddCmd() *cobra.Command {
	var group, source, sourceDesc string
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "add <name> <content>",
		Short: addShortDesc,
		Long:  addLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, fs, []string{config.FlagGroup})

			return runAdd(v, args[0], args[1], source, sourceDesc, debug)
		},
	}

	config.AddStringFlag(cmd, fs, config.FlagGroup, &group)
	cmd.Flags().StringVar(&source, "source", "", "Episode source: text, json, or message")
	cmd.Flags().StringVar(&sourceDesc, "source-description", "", "Where the content came from")

	return cmd
}

func runAdd(v *viper.Viper, name, content, source, sourceDesc string, debug bool) error {
	ctx := context.Background()

	s, err := session.Open(ctx, v, debug)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	var episodeUUID string
	err = cliui.Step(os.Stdout, fmt.Sprintf("Buffering episode %q", name), func() error {
		var addErr error
		episodeUUID, addErr = s.Adapter.AddMemory(ctx, name, content, adapter.MemoryOptions{
			Source:            source,
			SourceDescription: sourceDesc,
		})
		return addErr
	})
	if err != nil {
		return fmt.Errorf("adding memory: %w", err)
	}

	fmt.Printf("\n  %s %s\n\n", cliui.KeyStyle.Render("Episode:"), episodeUUID)
	return nil
}
