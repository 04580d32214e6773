package sheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Term is one classified element of a formula whose references have been
// replaced by values. Op is zero for a number.
type Term struct {
	Op    byte
	Value float64
}

// Num returns a number term
func Num(v float64) Term {
	return Term{Value: v}
}

// Op returns an operator term for one of + - * /
func Op(op string) Term {
	return Term{Op: op[0]}
}

// IsOp reports whether t is an operator
func (t Term) IsOp() bool {
	return t.Op != 0
}

func (t Term) String() string {
	if t.IsOp() {
		return string(t.Op)
	}
	return strconv.FormatFloat(t.Value, 'g', -1, 64)
}

// Evaluate runs terms through a single operand stack. For an operator the
// first value popped is the right-hand operand. Division follows IEEE 754,
// so x/0 gives ±Inf or NaN rather than an error.
func Evaluate(terms []Term) (float64, error) {
	if len(terms) == 0 {
		return 0, ErrEmptyFormula
	}

	stack := make([]float64, 0, len(terms))
	for _, t := range terms {
		if !t.IsOp() {
			stack = append(stack, t.Value)
			continue
		}

		if len(stack) < 2 {
			return 0, fmt.Errorf("%w: %q at depth %d", ErrStackUnderflow, string(t.Op), len(stack))
		}
		right := stack[len(stack)-1]
		left := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		var v float64
		switch t.Op {
		case '+':
			v = left + right
		case '-':
			v = left - right
		case '*':
			v = left * right
		case '/':
			v = left / right
		default:
			return 0, fmt.Errorf("unknown operator %q", string(t.Op))
		}
		stack = append(stack, v)
	}

	if len(stack) != 1 {
		return 0, fmt.Errorf("%w: %d values", ErrLeftoverOperands, len(stack))
	}
	return stack[0], nil
}

// EvaluateTokens evaluates a token sequence that contains only numbers and
// operators. Whitespace-only tokens are skipped.
func EvaluateTokens(tokens []string) (float64, error) {
	terms := make([]Term, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "" {
			continue
		}
		switch Classify(tok) {
		case KindOperator:
			terms = append(terms, Op(tok))
		case KindNumber:
			v, err := parseNumber(tok)
			if err != nil {
				return 0, err
			}
			terms = append(terms, Num(v))
		default:
			return 0, fmt.Errorf("unexpected token %q", tok)
		}
	}
	return Evaluate(terms)
}

func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w %q: %v", ErrBadNumber, tok, err)
	}
	return v, nil
}
