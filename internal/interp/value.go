package interp

import (
	"fmt"
	"strconv"
)

// Value is a runtime value: nil, bool, float64, string, Callable, or
// *Instance. Go's any already is the tagged union spec.md describes; no
// wrapper struct per kind is needed the way the donor project's
// IntegerValue/StringValue/... family does, since this language has no
// int/float distinction and no value-vs-reference-type copy semantics to
// encode on top of the union.
type Value = any

// IsTruthy implements the language's truthiness rule: only nil and the
// boolean false are falsy.
func IsTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// IsEqual implements the total equality used by == and !=: nil equals only
// nil; numbers, strings, and booleans compare by value; everything else
// (callables, instances) compares by identity.
func IsEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	default:
		return a == b
	}
}

// Stringify renders v per the canonical stringification rules (SPEC_FULL.md
// §4.7): used by the print statement and by the evaluate/run CLI output.
func Stringify(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
