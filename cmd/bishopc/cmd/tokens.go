package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bishop-lang/bishopc/internal/lexer"
	"github.com/bishop-lang/bishopc/internal/token"
)

var tokensShowKind bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Tokenize a Bishop file and print the resulting tokens",
	Long: `Tokenize a Bishop source file and print the token stream.

If no file is given, reads from stdin. Useful for debugging the lexer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVar(&tokensShowKind, "show-kind", true, "show token kind names")
}

func runTokens(_ *cobra.Command, args []string) error {
	filename, src, err := readSource(args)
	if err != nil {
		return err
	}

	for _, t := range lexer.ScanAll(filename, src) {
		if tokensShowKind {
			fmt.Printf("%-16s %-12q @%d\n", t.Kind, t.Lexeme, t.Line)
		} else {
			fmt.Printf("%-12q @%d\n", t.Lexeme, t.Line)
		}
		if t.Kind == token.EOF {
			break
		}
	}
	return nil
}

// readSource returns (filename, contents): args[0] if given, else stdin
// under the conventional "<stdin>" name.
func readSource(args []string) (string, string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return args[0], string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return "<stdin>", string(data), nil
}
