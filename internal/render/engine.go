package render

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/aescanero/dago-node-sheet/internal/sheet"
	"github.com/aymerick/raymond"
)

const (
	// DefaultSuccessTemplate prints name and value on alternating lines
	DefaultSuccessTemplate = "{{#each cells}}{{{name}}}\n{{{text}}}\n{{/each}}"

	// DefaultFailureTemplate prints the error on a single line
	DefaultFailureTemplate = "{{{message}}}\n"
)

var registerOnce sync.Once

// Engine renders sheet results with Handlebars templates
type Engine struct {
	success string
	failure string
	cache   map[string]*raymond.Template
	mu      sync.RWMutex
}

// NewEngine creates a new engine. Empty templates fall back to the defaults.
func NewEngine(successTemplate, failureTemplate string) *Engine {
	if successTemplate == "" {
		successTemplate = DefaultSuccessTemplate
	}
	if failureTemplate == "" {
		failureTemplate = DefaultFailureTemplate
	}

	registerOnce.Do(registerHelpers)

	return &Engine{
		success: successTemplate,
		failure: failureTemplate,
		cache:   make(map[string]*raymond.Template),
	}
}

// Validate checks that both templates parse
func (e *Engine) Validate() error {
	if _, err := e.getTemplate(e.success); err != nil {
		return fmt.Errorf("success template: %w", err)
	}
	if _, err := e.getTemplate(e.failure); err != nil {
		return fmt.Errorf("failure template: %w", err)
	}
	return nil
}

// CellValue is one entry of a rendered listing
type CellValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Text  string  `json:"text"`
}

// Values lists the resolved cells of s in ascending name order.
func Values(s *sheet.Sheet) []CellValue {
	names := s.Names()
	out := make([]CellValue, 0, len(names))
	for _, name := range names {
		c, _ := s.Cell(name)
		v, ok := c.Value()
		if !ok {
			continue
		}
		out = append(out, CellValue{Name: name, Value: v, Text: FormatFloat(v)})
	}
	return out
}

// Success renders the listing for a fully resolved sheet
func (e *Engine) Success(s *sheet.Sheet) (string, error) {
	values := Values(s)
	cells := make([]map[string]interface{}, len(values))
	for i, v := range values {
		cells[i] = map[string]interface{}{
			"name":  v.Name,
			"value": v.Value,
			"text":  v.Text,
		}
	}

	return e.Render(e.success, map[string]interface{}{
		"cells": cells,
		"count": len(cells),
	})
}

// Failure renders the report for err. Unresolved names are exposed when
// err is a circular dependency.
func (e *Engine) Failure(err error) (string, error) {
	unresolved := []string{}
	var cycle *sheet.CircularDependencyError
	if errors.As(err, &cycle) {
		unresolved = cycle.Names
	}

	return e.Render(e.failure, map[string]interface{}{
		"message":    err.Error(),
		"unresolved": unresolved,
	})
}

// Render renders a template with the given data
func (e *Engine) Render(templateStr string, data interface{}) (string, error) {
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// getTemplate gets a compiled template from cache or compiles it
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl, nil
	}

	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	e.cache[templateStr] = tmpl
	return tmpl, nil
}

// registerHelpers registers the global Handlebars helpers. raymond panics on
// duplicate registration, so this runs once per process.
func registerHelpers() {
	raymond.RegisterHelper("float", func(v float64) string {
		return FormatFloat(v)
	})

	raymond.RegisterHelper("uppercase", func(str string) string {
		return strings.ToUpper(str)
	})

	raymond.RegisterHelper("lowercase", func(str string) string {
		return strings.ToLower(str)
	})

	raymond.RegisterHelper("join", func(arr []string, sep string) string {
		return strings.Join(arr, sep)
	})
}
