// Package searchcmder provides the search command for querying graph
// nodes and facts.
package searchcmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hivemesh/strand/cmd/strand/session"
	"github.com/hivemesh/strand/pkg/adapter"
	"github.com/hivemesh/strand/pkg/cliui"
	"github.com/hivemesh/strand/pkg/config"
	"github.com/hivemesh/strand/pkg/graph"
	"github.com/hivemesh/strand/pkg/utils"
)

const searchLongDesc string = `Search the knowledge graph.

While connected the query runs against the remote service; when the
service is unreachable the local entity cache answers instead, with a
reduced relevance score.

Examples:
  strand search "billing team"
  strand search "rollout" --facts --group ops --max-facts 5`

const searchShortDesc string = "Search graph nodes or facts"

func NewSearchCmd() *cobra.Command {
	var group string
	var maxNodes, maxFacts int
	var facts bool
	fs := config.DefaultFlagSet()

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			configDir, _ := cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(configDir)
			if err != nil {
				return err
			}
			config.BindRegisteredFlags(v, cmd, fs, []string{
				config.FlagGroup, config.FlagMaxNodes, config.FlagMaxFacts,
			})

			return runSearch(v, args[0], facts, debug)
		},
	}

	config.AddStringFlag(cmd, fs, config.FlagGroup, &group)
	config.AddIntFlag(cmd, fs, config.FlagMaxNodes, &maxNodes)
	config.AddIntFlag(cmd, fs, config.FlagMaxFacts, &maxFacts)
	cmd.Flags().BoolVar(&facts, "facts", false, "Search facts instead of nodes")

	return cmd
}

func runSearch(v *viper.Viper, query string, facts, debug bool) error {
	ctx := context.Background()

	s, err := session.Open(ctx, v, debug)
	if err != nil {
		return err
	}
	defer s.Close(ctx)

	var opts adapter.SearchOptions

	if facts {
		result, err := s.Adapter.SearchFacts(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("searching facts: %w", err)
		}
		printFacts(result.Facts, result.RelevanceScore)
		return nil
	}

	result, err := s.Adapter.SearchNodes(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("searching nodes: %w", err)
	}
	printNodes(result, query)
	return nil
}

func printNodes(result graph.SearchResult, query string) {
	if len(result.Nodes) == 0 {
		fmt.Printf("  %s No nodes matched %q\n", cliui.DimStyle.Render("●"), query)
		return
	}

	fmt.Printf("\n  %s %.2f\n\n", cliui.KeyStyle.Render("Relevance:"), result.RelevanceScore)
	for i, n := range result.Nodes {
		fmt.Printf("  %s %s %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
			cliui.NameStyle.Render(n.Name),
			cliui.DimStyle.Render("("+n.UUID+")"),
		)
		for _, obs := range n.Observations {
			fmt.Printf("     %s\n", cliui.PreviewStyle.Render(utils.Truncate(obs, 72)))
		}
	}
	fmt.Println()
}

func printFacts(facts []string, relevance float64) {
	if len(facts) == 0 {
		fmt.Printf("  %s No facts matched\n", cliui.DimStyle.Render("●"))
		return
	}

	fmt.Printf("\n  %s %.2f\n\n", cliui.KeyStyle.Render("Relevance:"), relevance)
	for i, fact := range facts {
		fmt.Printf("  %s %s\n",
			cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
			cliui.PreviewStyle.Render(utils.Truncate(fact, 72)),
		)
	}
	fmt.Println()
}
