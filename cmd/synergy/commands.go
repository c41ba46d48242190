package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/synergraph/core/internal/focus"
	"github.com/synergraph/core/internal/models"
	"github.com/synergraph/core/internal/parser"
)

func newEgoCmd(opts *cliOptions) *cobra.Command {
	var (
		threshold float64
		jump      string
	)

	cmd := &cobra.Command{
		Use:   "ego [card]",
		Short: "Print the ego network of a card as renderer JSON",
		Long: `Prints the nodes and edges of the card's ego network together with the
cards whose neighbourhood overlaps it.

With --jump the ego network of that card is printed instead, while the
similar list stays anchored to [card].`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateThreshold(threshold); err != nil {
				return err
			}
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			nav := focus.NewNavigator(c, threshold, opts.egoOptions()...)
			t, err := nav.FocusChanged(args[0])
			if err != nil {
				return err
			}
			if jump != "" {
				if t, err = nav.Jump(jump); err != nil {
					return err
				}
			}

			graph, err := parser.BuildGraph(t.Network.Adjacency, c.Graph().Weights, c, models.EgoLayout)
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"main":    t.Main,
				"focus":   t.Displayed,
				"graph":   graph,
				"similar": t.Similar,
			})
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "minimum neighbourhood overlap for similar cards")
	cmd.Flags().StringVar(&jump, "jump", "", "display this similar card's ego network")
	return cmd
}

func newSimilarCmd(opts *cliOptions) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "similar [card]",
		Short: "List cards with a similar neighbourhood, sorted by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateThreshold(threshold); err != nil {
				return err
			}
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			t, err := focus.NewNavigator(c, threshold, opts.egoOptions()...).FocusChanged(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, s := range t.Similar {
				marker := " "
				if s.ID == t.Main {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s\t%s\n", marker, s.Card.Name, s.ID)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "minimum neighbourhood overlap")
	return cmd
}

func validateThreshold(threshold float64) error {
	if threshold <= 0 || threshold > 1 {
		return fmt.Errorf("threshold must be in (0, 1], got %v", threshold)
	}
	return nil
}

func newCardsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "cards",
		Short: "List the card catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, card := range c.Cards() {
				fmt.Fprintf(out, "%s\t%s\n", card.Card.Name, card.ID)
			}
			if missing := c.Validate(); len(missing) > 0 {
				opts.log.Warn("graph vertices without a card", "vertices", missing)
			}
			return nil
		},
	}
}

func newBuildGraphCmd(opts *cliOptions) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "build-graph",
		Short: "Build a graph document from card1:card2 interaction terms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			graph, err := parser.ParseInteractions(f)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			opts.log.Info("graph built", "vertices", len(graph.Adjacency), "weights", len(graph.Weights))

			if out == "" || out == "-" {
				return writeJSON(cmd.OutOrStdout(), graph)
			}
			dst, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := writeJSON(dst, graph); err != nil {
				dst.Close()
				return err
			}
			return dst.Close()
		},
	}

	cmd.Flags().StringVar(&in, "in", "int_lasso.txt", "interaction terms, one card1:card2 per line")
	cmd.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	return cmd
}
