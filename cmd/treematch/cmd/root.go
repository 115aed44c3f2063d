// Package cmd provides the CLI commands for treematch.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/termfx/treematch/internal/config"
)

// NewRootCmd creates the root command for the treematch CLI.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "treematch",
		Short: "Check process-variant trees against structural pattern queries",
		Long: `treematch matches a process-variant tree (Sequence, Parallel and Leaf
nodes) against a structural pattern query (which additionally allows
Choice, Wildcard, Anything, Optional, Loop, Fallthrough, Start and End).

It ships three interchangeable matching engines that must always agree:
  dfs       expand the query into concrete alternatives, then backtrack
  direct    walk the query directly, no pre-expansion
  vm        compile the query to a bytecode VM and run it
  vm-lazy   the same VM with deferred Parallel checking`,
	}

	root.AddCommand(newMatchCmd(cfg))
	root.AddCommand(newBatchCmd(cfg))
	return root
}
