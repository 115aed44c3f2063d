package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/termfx/treematch/internal/cli"
	"github.com/termfx/treematch/internal/config"
	"github.com/termfx/treematch/internal/query"
	"github.com/termfx/treematch/internal/util"
	"github.com/termfx/treematch/internal/verdictdb"
)

type batchOptions struct {
	queryPath string
	variants  string
	engine    string
	cacheDSN  string
}

func newBatchCmd(cfg *config.Config) *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Check every variant file matching a glob against one query",
		Long: `batch expands a doublestar glob of variant JSON files and reports
one verdict per file.

Example:
  treematch batch --query pattern.json --variants 'testdata/**/*.json' --cache verdicts.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.queryPath, "query", "", "path to the query tree JSON file (required)")
	cmd.Flags().StringVar(&opts.variants, "variants", "", "doublestar glob of variant tree JSON files (required)")
	cmd.Flags().StringVar(&opts.engine, "engine", "dfs", "engine to use: dfs, direct, vm, vm-lazy")
	cmd.Flags().StringVar(&opts.cacheDSN, "cache", "", "optional verdict cache DSN (sqlite)")
	cmd.MarkFlagRequired("query")
	cmd.MarkFlagRequired("variants")

	return cmd
}

func runBatch(cmd *cobra.Command, cfg *config.Config, opts batchOptions) error {
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

	if opts.cacheDSN != "" {
		cache, err := verdictdb.Open(opts.cacheDSN, cfg.Debug)
		if err != nil {
			return fmt.Errorf("failed to open verdict cache: %w", err)
		}
		defer cache.Close()
		runner.Cache = cache
	}

	queryHash := util.SHA1FileHex(opts.queryPath)
	results, err := runner.RunBatch(queryHash, opts.variants)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "%s\tERROR: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(out, "%s\t%v\n", r.Path, r.Verdict)
	}
	return nil
}
