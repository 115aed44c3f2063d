// Command treematch checks process-variant trees against structural
// pattern queries.
package main

import (
	"fmt"
	"os"

	"github.com/termfx/treematch/cmd/treematch/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
