// Package expr implements the calculator expression editing rules.
//
// The editor is deliberately permissive: operators may be chained
// ("12+*3" is accepted) because validation is the remote service's
// problem, not ours. The only local rule is one decimal point per
// numeric segment.
package expr

import "strings"

// Operators are the binary operators the keypad accepts.
const Operators = "+-*/"

// IsDigit reports whether r is an ASCII digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsOperator reports whether r is one of the accepted binary operators.
func IsOperator(r rune) bool {
	return strings.ContainsRune(Operators, r)
}

// IsInput reports whether r is any keystroke the editor accepts.
func IsInput(r rune) bool {
	return IsDigit(r) || IsOperator(r) || r == '.'
}

// Append applies one keystroke to the expression and returns the new
// expression plus whether the keystroke was accepted. A rejected
// keystroke leaves the expression unchanged.
func Append(expression string, r rune) (string, bool) {
	switch {
	case IsDigit(r) || IsOperator(r):
		return expression + string(r), true
	case r == '.':
		if segmentHasDecimal(expression) {
			return expression, false
		}
		return expression + ".", true
	default:
		return expression, false
	}
}

// Backspace removes exactly one trailing rune.
func Backspace(expression string) string {
	if expression == "" {
		return ""
	}
	runes := []rune(expression)
	return string(runes[:len(runes)-1])
}

// segmentHasDecimal reports whether the trailing numeric segment (the
// substring after the last operator) already contains a decimal point.
func segmentHasDecimal(expression string) bool {
	seg := expression
	if i := strings.LastIndexAny(expression, Operators); i >= 0 {
		seg = expression[i+1:]
	}
	return strings.Contains(seg, ".")
}
