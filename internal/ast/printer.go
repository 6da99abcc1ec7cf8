package ast

import (
	"strconv"
	"strings"
)

// Print renders an expression in parenthesised prefix form, e.g.
// "1 + 2 * 3" -> "(+ 1 (* 2 3))". Used by the parse subcommand's default
// (non --dump-ast) output mode.
func Print(e Expr) string {
	var b strings.Builder
	printExpr(&b, e)
	return b.String()
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		printExpr(b, e)
	}
	b.WriteByte(')')
}

func printExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		b.WriteString(literalString(n.Value))
	case *Unary:
		parenthesize(b, n.Op.Lexeme, n.Right)
	case *Binary:
		parenthesize(b, n.Op.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Op.Lexeme, n.Left, n.Right)
	case *Grouping:
		parenthesize(b, "group", n.Inner)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *Call:
		parenthesize(b, "call", append([]Expr{n.Callee}, n.Args...)...)
	case *Get:
		parenthesize(b, "get "+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(b, "set "+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("(super " + n.Method.Lexeme + ")")
	default:
		b.WriteString("<?>")
	}
}

// Dump renders an expression as an indented tree, one node per line. Used
// by the parse subcommand's --dump-ast mode.
func Dump(e Expr) string {
	var b strings.Builder
	dumpExpr(&b, e, 0)
	return strings.TrimRight(b.String(), "\n")
}

func dumpExpr(b *strings.Builder, e Expr, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := e.(type) {
	case *Literal:
		b.WriteString(indent + "Literal " + literalString(n.Value) + "\n")
	case *Unary:
		b.WriteString(indent + "Unary " + n.Op.Lexeme + "\n")
		dumpExpr(b, n.Right, depth+1)
	case *Binary:
		b.WriteString(indent + "Binary " + n.Op.Lexeme + "\n")
		dumpExpr(b, n.Left, depth+1)
		dumpExpr(b, n.Right, depth+1)
	case *Logical:
		b.WriteString(indent + "Logical " + n.Op.Lexeme + "\n")
		dumpExpr(b, n.Left, depth+1)
		dumpExpr(b, n.Right, depth+1)
	case *Grouping:
		b.WriteString(indent + "Grouping\n")
		dumpExpr(b, n.Inner, depth+1)
	case *Variable:
		b.WriteString(indent + "Variable " + n.Name.Lexeme + "\n")
	case *Assign:
		b.WriteString(indent + "Assign " + n.Name.Lexeme + "\n")
		dumpExpr(b, n.Value, depth+1)
	case *Call:
		b.WriteString(indent + "Call\n")
		dumpExpr(b, n.Callee, depth+1)
		for _, a := range n.Args {
			dumpExpr(b, a, depth+1)
		}
	case *Get:
		b.WriteString(indent + "Get " + n.Name.Lexeme + "\n")
		dumpExpr(b, n.Object, depth+1)
	case *Set:
		b.WriteString(indent + "Set " + n.Name.Lexeme + "\n")
		dumpExpr(b, n.Object, depth+1)
		dumpExpr(b, n.Value, depth+1)
	case *This:
		b.WriteString(indent + "This\n")
	case *Super:
		b.WriteString(indent + "Super " + n.Method.Lexeme + "\n")
	default:
		b.WriteString(indent + "<?>\n")
	}
}

func literalString(v any) string {
	if v == nil {
		return "nil"
	}
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return "<?>"
	}
}
