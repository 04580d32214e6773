package sheet

import (
	"fmt"

	"go.uber.org/zap"
)

// Strategy names a resolution algorithm
type Strategy string

const (
	// StrategyFixedPoint repeats substitution rounds until nothing changes
	StrategyFixedPoint Strategy = "fixedpoint"

	// StrategyTopoSort orders cells with Kahn's algorithm
	StrategyTopoSort Strategy = "toposort"
)

// Resolver computes a value for every cell of a sheet.
//
// Resolve returns a *CircularDependencyError if some cells can never
// resolve, or a *MalformedFormulaError if a formula with all of its
// references available does not evaluate.
type Resolver interface {
	Resolve(s *Sheet) error
}

// NewResolver returns the resolver for strategy
func NewResolver(strategy Strategy, logger *zap.Logger) (Resolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch strategy {
	case StrategyFixedPoint, "":
		return &FixedPoint{logger: logger}, nil
	case StrategyTopoSort:
		return &TopoSort{logger: logger}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// FixedPoint resolves cells by bounded fixed-point iteration. With N cells
// initially unresolved, no acyclic dependency chain is longer than N, so
// anything still unresolved after N rounds never will be.
type FixedPoint struct {
	logger *zap.Logger
}

// Resolve implements Resolver
func (r *FixedPoint) Resolve(s *Sheet) error {
	pending := s.unresolved()
	rounds := len(pending)

	for round := 0; round < rounds && len(pending) > 0; round++ {
		remaining := pending[:0:0]
		for _, name := range pending {
			c := s.cells[name]
			terms, ok, err := s.substitute(c)
			if err != nil {
				return &MalformedFormulaError{Cell: name, Err: err}
			}
			if !ok {
				remaining = append(remaining, name)
				continue
			}

			v, err := Evaluate(terms)
			if err != nil {
				return &MalformedFormulaError{Cell: name, Err: err}
			}
			c.setValue(v)
		}

		r.logger.Debug("resolution round complete",
			zap.Int("round", round+1),
			zap.Int("resolved", len(pending)-len(remaining)),
			zap.Int("remaining", len(remaining)),
		)
		pending = remaining
	}

	if len(pending) > 0 {
		r.logger.Warn("unresolvable cells",
			zap.Strings("cells", pending),
		)
		return &CircularDependencyError{Names: pending}
	}
	return nil
}
