// Package cel evaluates CEL (Common Expression Language) assertions against
// the values of a resolved sheet.
//
// Each assertion is a boolean expression over the variable cells, a map from
// cell name to double.
//
// Example usage:
//
//	evaluator := cel.NewEvaluator()
//
//	values := map[string]float64{"A": 1, "B": 2, "C": 3}
//
//	ok, err := evaluator.Check(ctx, `cells["C"] == cells["A"] + cells["B"]`, values)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// ok == true
//
// Useful operations:
//   - Comparisons: ==, !=, <, <=, >, >=
//   - Boolean logic: &&, ||, !
//   - Arithmetic on doubles: +, -, *, /
//   - Presence: "A" in cells, size(cells)
//   - Macros: cells.all(k, cells[k] >= 0.0)
package cel
