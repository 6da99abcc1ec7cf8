package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/loxrun/lox/internal/ast"
	"github.com/loxrun/lox/internal/diagnostics"
	"github.com/loxrun/lox/internal/interp"
	"github.com/loxrun/lox/internal/lexer"
	"github.com/loxrun/lox/internal/parser"
	"github.com/loxrun/lox/internal/resolver"
	"github.com/spf13/cobra"
)

var evaluateExpr string

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [file]",
	Short: "Evaluate a single Lox expression and print its result",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVarP(&evaluateExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
}

func runEvaluate(_ *cobra.Command, args []string) error {
	source, _, err := readSource(args, evaluateExpr)
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

	stmts := []ast.Stmt{&ast.ExpressionStmt{Expression: expr}}
	locals := resolver.New(sink).Resolve(stmts)
	if sink.HadError() {
		sink.WriteTo(os.Stderr)
		os.Exit(65)
	}
	sink.WriteTo(os.Stderr) // non-fatal hints (e.g. unused variable) collected so far

	var out bytes.Buffer
	in := interp.New(&out, locals)
	value, err := in.Evaluate(expr)
	if err != nil {
		if rerr, ok := err.(*diagnostics.RuntimeError); ok {
			rerr.WriteTo(os.Stderr)
			os.Exit(70)
		}
		return err
	}

	fmt.Println(interp.Stringify(value))
	return nil
}
