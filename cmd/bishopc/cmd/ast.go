package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bishop-lang/bishopc/internal/parser"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Parse a Bishop file and print its top-level declarations",
	Long: `Parse a Bishop source file and list its top-level declarations
grouped by kind (imports, usings, constants, structs, errors, externs,
functions, methods), each group in source order.

internal/ast deliberately has no generic tree-walk (every pass owns its own
traversal), so this prints a one-line-per-declaration summary rather than a
full recursive dump.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAST(_ *cobra.Command, args []string) error {
	filename, src, err := readSource(args)
	if err != nil {
		return err
	}

	prog, err := parser.Parse(filename, src)
	if err != nil {
		return err
	}

	for _, im := range prog.Imports {
		fmt.Printf("import %s as %s\n", im.ModulePath, im.Alias)
	}
	for _, u := range prog.Usings {
		if u.WildcardModule != "" {
			fmt.Printf("using %s.*\n", u.WildcardModule)
			continue
		}
		for _, mem := range u.Members {
			fmt.Printf("using %s.%s\n", mem.Module, mem.Member)
		}
	}
	for _, c := range prog.Constants {
		fmt.Printf("const %s %s\n", c.Type, c.Name)
	}
	for _, st := range prog.Structs {
		fmt.Printf("struct %s (%d fields)\n", st.Name, len(st.Fields))
	}
	for _, e := range prog.Errors {
		fmt.Printf("err %s (%d fields)\n", e.Name, len(e.Fields))
	}
	for _, ext := range prog.Externs {
		fmt.Printf("extern fn %s -> %s (from %q)\n", ext.Name, ext.ReturnType, ext.Library)
	}
	for _, fn := range prog.Functions {
		fmt.Printf("fn %s(%d params) -> %s\n", fn.Name, len(fn.Params), fn.ReturnType)
	}
	for _, m := range prog.Methods {
		recv := m.StructName
		if m.IsStatic {
			recv = "@static " + recv
		}
		fmt.Printf("%s :: %s(%d params) -> %s\n", recv, m.Name, len(m.Params), m.ReturnType)
	}
	return nil
}
