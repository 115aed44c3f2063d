package cmd

import (
	"fmt"

	"github.com/termfx/treematch/internal/query"
)

func parseEngineKind(name string) (query.EngineKind, error) {
	switch name {
	case "dfs", "":
		return query.DFS, nil
	case "direct":
		return query.Direct, nil
	case "vm":
		return query.VM, nil
	case "vm-lazy":
		return query.VMLazy, nil
	default:
		return 0, fmt.Errorf("unknown engine %q (want dfs, direct, vm, or vm-lazy)", name)
	}
}
