// Package render turns a resolved sheet, or the failure that stopped it,
// into text using Handlebars templates.
//
// The default templates reproduce the plain listing format: each cell name
// on its own line followed by its value, in ascending name order, or a
// single line carrying the circular dependency report.
//
// Example usage:
//
//	engine := render.NewEngine(render.DefaultSuccessTemplate, render.DefaultFailureTemplate)
//
//	out, err := engine.Success(s)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out)
//	// A
//	// 1.0
//	// B
//	// 2.0
//
// Success templates see:
//   - cells - list of {name, value, text} in name order
//   - count - number of cells
//
// Failure templates see:
//   - message - the error text
//   - unresolved - names of the cells that did not resolve, if any
//
// Built-in helpers:
//   - float - format a number as 3.0, 1.0E10, NaN or Infinity
//   - join - join list elements with a separator
//   - uppercase / lowercase - change case
//
// Example with helpers:
//
//	{{#each cells}}{{name}}={{float value}}{{/each}}
//	{{join unresolved ", "}}
package render
