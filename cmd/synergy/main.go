// Command synergy queries the card-synergy graph from the terminal and
// builds graph documents from interaction lists.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/synergraph/core/internal/catalog"
	"github.com/synergraph/core/internal/ego"
	"github.com/synergraph/core/internal/logger"
)

type cliOptions struct {
	cardsSource string
	graphSource string
	verbose     bool
	timeout     time.Duration
	dedupe      bool

	log *logger.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "synergy",
		Short: "Explore card synergy ego networks",
		Long: `synergy loads a card catalog and a weighted synergy graph and answers
ego-network and similar-card queries against them.

Sources may be local paths or http(s) URLs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(false, opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				opts.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.cardsSource, "cards", "cards.json", "card catalog path or URL")
	root.PersistentFlags().StringVar(&opts.graphSource, "graph", "graph_lasso_0.001.json", "synergy graph path or URL")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "timeout for loading sources")
	root.PersistentFlags().BoolVar(&opts.dedupe, "dedupe", false, "ignore repeated neighbours")

	root.AddCommand(
		newEgoCmd(opts),
		newSimilarCmd(opts),
		newCardsCmd(opts),
		newBuildGraphCmd(opts),
	)
	return root
}

func (o *cliOptions) load(ctx context.Context) (*catalog.Catalog, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	c, err := catalog.NewLoader(catalog.SourceFor(o.cardsSource), catalog.SourceFor(o.graphSource)).Load(ctx)
	if err != nil {
		return nil, err
	}
	o.log.Debug("catalog loaded", "cards", len(c.Cards()), "vertices", len(c.Vertices()))
	return c, nil
}

func (o *cliOptions) egoOptions() []ego.Option {
	if o.dedupe {
		return []ego.Option{ego.WithDeduplication()}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
