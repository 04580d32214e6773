package sheet

import (
	"fmt"
	"sort"
)

// Sheet maps cell names to cells. Names are case-sensitive and unique.
type Sheet struct {
	cells map[string]*Cell
}

// NewSheet creates a new, empty sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[string]*Cell)}
}

// FromMap builds a sheet from a name to raw content mapping.
func FromMap(raw map[string]string) *Sheet {
	s := NewSheet()
	for name, content := range raw {
		s.Add(name, content)
	}
	return s
}

// Add creates a cell for name with the given raw content. An existing cell
// with the same name is replaced.
func (s *Sheet) Add(name, raw string) *Cell {
	c := NewCell(name, raw)
	s.cells[name] = c
	return c
}

// Cell returns the cell called name, if there is one.
func (s *Sheet) Cell(name string) (*Cell, bool) {
	c, ok := s.cells[name]
	return c, ok
}

// Len returns the number of cells
func (s *Sheet) Len() int {
	return len(s.cells)
}

// Names returns every cell name in ascending lexicographic order.
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.cells))
	for name := range s.cells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Value returns the resolved value of the named cell. It returns an error if
// the cell does not exist or has not resolved.
func (s *Sheet) Value(name string) (float64, error) {
	c, ok := s.cells[name]
	if !ok {
		return 0, fmt.Errorf("no cell named %q", name)
	}
	v, resolved := c.Value()
	if !resolved {
		return 0, fmt.Errorf("cell %q is not resolved", name)
	}
	return v, nil
}

// Values returns the resolved cells as a name to value map
func (s *Sheet) Values() map[string]float64 {
	out := make(map[string]float64, len(s.cells))
	for name, c := range s.cells {
		if v, ok := c.Value(); ok {
			out[name] = v
		}
	}
	return out
}

// unresolved returns the names of cells without a value, sorted.
func (s *Sheet) unresolved() []string {
	var names []string
	for _, name := range s.Names() {
		if !s.cells[name].resolved {
			names = append(names, name)
		}
	}
	return names
}

// substitute builds a fresh evaluation buffer for c, replacing references
// with the values of the cells they name. ok is false if any reference is
// missing or still unresolved.
func (s *Sheet) substitute(c *Cell) (terms []Term, ok bool, err error) {
	terms = make([]Term, 0, len(c.tokens))
	for _, tok := range c.tokens {
		switch Classify(tok) {
		case KindOperator:
			terms = append(terms, Op(tok))
		case KindNumber:
			v, err := parseNumber(tok)
			if err != nil {
				return nil, false, err
			}
			terms = append(terms, Num(v))
		default:
			ref, exists := s.cells[tok]
			if !exists || !ref.resolved {
				return nil, false, nil
			}
			terms = append(terms, Num(ref.value))
		}
	}
	return terms, true, nil
}
