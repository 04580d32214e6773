package sheet

import (
	"regexp"
)

// TokenKind classifies a formula token.
type TokenKind int

const (
	// KindNumber is a numeric literal such as 3, -2 or +1.5
	KindNumber TokenKind = iota

	// KindOperator is one of + - * /
	KindOperator

	// KindReference names another cell
	KindReference
)

// String returns the name of the kind
func (k TokenKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindOperator:
		return "operator"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// "3." is not a number; the fraction needs at least one digit.
var numberRE = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// IsNumber reports whether token is a numeric literal.
func IsNumber(token string) bool {
	return numberRE.MatchString(token)
}

// IsOperator reports whether token is exactly one of the four arithmetic operators.
func IsOperator(token string) bool {
	switch token {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// Classify returns the kind of token. Anything that is neither a number nor
// an operator is taken to be a cell reference.
func Classify(token string) TokenKind {
	if IsNumber(token) {
		return KindNumber
	}
	if IsOperator(token) {
		return KindOperator
	}
	return KindReference
}
