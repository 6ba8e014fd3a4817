// Command bishopc is the Bishop compiler's CLI, a thin Cobra wrapper over
// pkg/bishop for a single source file at a time (spec.md's Non-goals
// exclude multi-file project discovery — that stays an external driver's
// job, same split the teacher draws between cmd/dwscript and pkg/dwscript).
package main

import (
	"fmt"
	"os"

	"github.com/bishop-lang/bishopc/cmd/bishopc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
