package lexer

import "strconv"

// formatLiteralNumber renders a NUMBER token's literal for the tokenize
// subcommand. Unlike the evaluator's canonical stringification (which drops
// the decimal point for integral values), token dumps always show a decimal
// point, so an integral literal such as 123 renders as "123.0".
func formatLiteralNumber(v any) string {
	f, ok := v.(float64)
	if !ok {
		return ""
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	for _, c := range s {
		if c == '.' {
			return s
		}
	}
	return s + ".0"
}
