package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bishopc",
	Short: "Bishop language compiler",
	Long: `bishopc is the reference compiler for Bishop, a statically-typed
scripting language that translates to a C++-flavored runtime
(bishop_rt): coroutine-based concurrency, a Result<T> error model, and a
small set of container adapters.

bishopc compiles one source file at a time; multi-file project
discovery is left to an external build driver.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
