package cmd

import (
	"fmt"
	"os"

	"github.com/loxrun/lox/internal/ast"
	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/loxrun/lox/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpr    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox expression and print its AST",
	Long: `Parse a single Lox expression and print it in parenthesised prefix
form: operator or keyword head, then its children. With --dump-ast, print
an indented tree instead.

Examples:
  lox parse -e "1 + 2 * 3"
  lox parse --dump-ast -e "1 + 2 * 3"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParseExpr,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "parse inline source instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump an indented AST tree instead of the parenthesised form")
}

func runParseExpr(_ *cobra.Command, args []string) error {
	source, _, err := readSource(args, parseExpr)
	if err != nil {
		return err
	}

	sink := diagnostics.NewCollectingSink()
	tokens := lexer.New(source, lexer.WithSink(sink)).Scan()
	p := parser.New(tokens, sink)
	expr := p.ParseExpression()

	if sink.HadError() {
		sink.WriteTo(os.Stderr)
		os.Exit(65)
	}

	if parseDumpAST {
		fmt.Println(ast.Dump(expr))
		return nil
	}
	fmt.Println(ast.Print(expr))
	return nil
}
