// Package sheet resolves a small spreadsheet of named cells.
//
// Each cell holds either a literal number or a formula in postfix notation
// whose operands are numbers or the names of other cells. A Resolver computes
// a value for every cell, in whatever order the dependencies allow, and
// reports the cells that can never resolve as a circular dependency.
//
// Example usage:
//
//	s := sheet.NewSheet()
//	s.Add("A", "1")
//	s.Add("B", "2")
//	s.Add("C", "A B +")
//
//	r, _ := sheet.NewResolver(sheet.StrategyFixedPoint, logger)
//	if err := r.Resolve(s); err != nil {
//	    var cycle *sheet.CircularDependencyError
//	    if errors.As(err, &cycle) {
//	        fmt.Println(cycle.Error()) // Circular dependency between ... detected
//	    }
//	}
//
//	for _, name := range s.Names() {
//	    v, _ := s.Value(name)
//	    fmt.Println(name, v)
//	}
//
// Two strategies are available:
//   - fixedpoint - up to N substitution rounds over the unresolved cells
//   - toposort - Kahn's algorithm over the reference graph
//
// Both produce the same partition into resolved and unresolved cells.
package sheet
