package cmd

import (
	"fmt"
	"os"

	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/spf13/cobra"
)

var tokenizeExpr string

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Scan a Lox file and print its tokens",
	Long: `Scan a Lox program and print one token per line as
"<KIND> <LEXEME> <LITERAL-or-\"null\">".

Examples:
  lox tokenize script.lox
  lox tokenize -e "1 + 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().StringVarP(&tokenizeExpr, "eval", "e", "", "tokenize inline source instead of reading a file")
}

func runTokenize(_ *cobra.Command, args []string) error {
	source, _, err := readSource(args, tokenizeExpr)
	if err != nil {
		return err
	}

	sink := diagnostics.NewCollectingSink()
	tokens := lexer.New(source, lexer.WithSink(sink)).Scan()

	for _, tok := range tokens {
		fmt.Printf("%s %s %s\n", tok.Type, tok.Lexeme, tok.Literally())
	}

	if sink.HadError() {
		sink.WriteTo(os.Stderr)
		os.Exit(65)
	}
	return nil
}
