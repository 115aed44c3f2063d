package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/termfx/treematch/internal/cli"
	"github.com/termfx/treematch/internal/config"
	"github.com/termfx/treematch/internal/query"
	"github.com/termfx/treematch/internal/util"
)

type matchOptions struct {
	queryPath   string
	variantPath string
	engine      string
}

func newMatchCmd(cfg *config.Config) *cobra.Command {
	var opts matchOptions

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Check one variant file against one query file",
		Long: `match loads a query tree and a single variant tree, each from a
JSON file, and reports whether the variant satisfies the query.

Example:
  treematch match --query pattern.json --variant run-42.json --engine vm`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.queryPath, "query", "", "path to the query tree JSON file (required)")
	cmd.Flags().StringVar(&opts.variantPath, "variant", "", "path to the variant tree JSON file (required)")
	cmd.Flags().StringVar(&opts.engine, "engine", "dfs", "engine to use: dfs, direct, vm, vm-lazy")
	cmd.MarkFlagRequired("query")
	cmd.MarkFlagRequired("variant")

	return cmd
}

func runMatch(cmd *cobra.Command, cfg *config.Config, opts matchOptions) error {
	kind, err := parseEngineKind(opts.engine)
	if err != nil {
		return err
	}

	queryNode, err := cli.LoadNode(opts.queryPath)
	if err != nil {
		return err
	}

	mq, err := query.BuildQuery(queryNode, kind,
		query.WithLoopCap(cfg.LoopCap),
		query.WithExpansionCeiling(cfg.ExpansionCeiling))
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	runner := &cli.Runner{Query: mq, QueryNode: queryNode, Debug: cfg.Debug}

	queryHash := util.SHA1FileHex(opts.queryPath)
	verdict, err := runner.RunOne(queryHash, opts.variantPath)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), verdict)
	return nil
}
