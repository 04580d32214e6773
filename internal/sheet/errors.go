package sheet

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned by NewResolver for an unrecognised strategy name
var ErrUnknownStrategy = errors.New("unknown resolution strategy")

// Malformed formula causes
var (
	ErrStackUnderflow   = errors.New("operator without two operands")
	ErrLeftoverOperands = errors.New("operands left on the stack")
	ErrEmptyFormula     = errors.New("empty formula")
	ErrBadNumber        = errors.New("invalid number")
)

// MalformedFormulaError reports a formula that cannot be evaluated as postfix.
type MalformedFormulaError struct {
	Cell string
	Err  error
}

func (e *MalformedFormulaError) Error() string {
	if e.Cell == "" {
		return fmt.Sprintf("malformed formula: %v", e.Err)
	}
	return fmt.Sprintf("malformed formula in cell %s: %v", e.Cell, e.Err)
}

func (e *MalformedFormulaError) Unwrap() error {
	return e.Err
}
