package sheet

import (
	"strings"
)

// Cell is a named spreadsheet entry holding a literal number or a postfix
// formula. A cell starts unresolved unless its content is a literal, and
// becomes resolved exactly once.
type Cell struct {
	name     string
	tokens   []string
	value    float64
	resolved bool
}

// NewCell creates a cell from its raw content. A literal number is resolved
// immediately; anything else is split on whitespace into formula tokens.
func NewCell(name, raw string) *Cell {
	c := &Cell{name: name}

	trimmed := strings.TrimSpace(raw)
	if IsNumber(trimmed) {
		c.tokens = []string{trimmed}
		if v, err := parseNumber(trimmed); err == nil {
			c.value = v
			c.resolved = true
		}
		return c
	}

	c.tokens = strings.Fields(raw)
	return c
}

// Name returns the cell's name
func (c *Cell) Name() string {
	return c.name
}

// Tokens returns a copy of the formula tokens
func (c *Cell) Tokens() []string {
	out := make([]string, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Value returns the resolved value and whether the cell has resolved
func (c *Cell) Value() (float64, bool) {
	return c.value, c.resolved
}

// Resolved reports whether the cell has a value
func (c *Cell) Resolved() bool {
	return c.resolved
}

// References returns the distinct cell names the formula refers to, in
// order of first appearance.
func (c *Cell) References() []string {
	var refs []string
	seen := make(map[string]bool)
	for _, tok := range c.tokens {
		if Classify(tok) != KindReference || seen[tok] {
			continue
		}
		seen[tok] = true
		refs = append(refs, tok)
	}
	return refs
}

// setValue records the value. Later calls are ignored.
func (c *Cell) setValue(v float64) {
	if c.resolved {
		return
	}
	c.value = v
	c.resolved = true
}
