package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bishop-lang/bishopc/pkg/bishop"
)

var (
	emitOutputFile string
	emitTestMode   bool
	emitVerbose    bool
)

var emitCmd = &cobra.Command{
	Use:   "emit <file>",
	Short: "Compile a Bishop file to its target-language source",
	Long: `Compile a Bishop source file all the way through the emitter and
write the generated bishop_rt-targeting source to disk.

Examples:
  # Emit to <input>.cc
  bishopc emit script.bishop

  # Emit to a specific path
  bishopc emit script.bishop -o build/script.cc

  # Emit a test harness instead of the program's main
  bishopc emit script_test.bishop --test-mode`,
	Args: cobra.ExactArgs(1),
	RunE: runEmit,
}

func init() {
	rootCmd.AddCommand(emitCmd)

	emitCmd.Flags().StringVarP(&emitOutputFile, "out", "o", "", "output file (default: <input>.cc)")
	emitCmd.Flags().BoolVar(&emitTestMode, "test-mode", false, "emit a harness that runs test_*-prefixed functions instead of main")
	emitCmd.Flags().BoolVarP(&emitVerbose, "verbose", "v", false, "verbose output")
}

func runEmit(_ *cobra.Command, args []string) error {
	filename := args[0]

	if emitVerbose {
		fmt.Fprintf(os.Stderr, "Compiling %s...\n", filename)
	}

	result, err := bishop.Compile(filename, bishop.Options{TestMode: emitTestMode})
	if err != nil {
		return err
	}

	out := emitOutputFile
	if out == "" {
		ext := filepath.Ext(filename)
		if ext != "" {
			out = strings.TrimSuffix(filename, ext) + ".cc"
		} else {
			out = filename + ".cc"
		}
	}

	if err := os.WriteFile(out, []byte(result.Output), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", out, err)
	}

	if emitVerbose {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", out, len(result.Output))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, out)
	}
	return nil
}
