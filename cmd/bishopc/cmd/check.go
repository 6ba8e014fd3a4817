package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bishop-lang/bishopc/internal/checker"
	"github.com/bishop-lang/bishopc/internal/module"
	"github.com/bishop-lang/bishopc/internal/parser"
)

var checkShowContext bool

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Type-check a Bishop file and report diagnostics",
	Long: `Parse and type-check a Bishop source file, printing every diagnostic
the checker accumulates (spec.md: the checker never aborts on the first
error — every problem in the file is reported in one pass).

Exits non-zero if any diagnostic was reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkShowContext, "context", false, "show the offending source line under each diagnostic")
}

func runCheck(_ *cobra.Command, args []string) error {
	filename, src, err := readSource(args)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(filename, src)
	if err != nil {
		return err
	}

	_, diags := checker.Check(filename, src, prog, module.NewRegistry())
	if !diags.HasErrors() {
		fmt.Println("ok")
		return nil
	}

	for _, d := range diags {
		if checkShowContext {
			d.Source = src
			fmt.Print(d.WithContext())
		} else {
			fmt.Println(d.String())
		}
	}
	return fmt.Errorf("%d diagnostic(s)", len(diags))
}
