package cel

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// Evaluator evaluates CEL assertions over sheet values
type Evaluator struct {
	env   *cel.Env
	cache map[string]cel.Program
	mu    sync.RWMutex
}

// NewEvaluator creates a new CEL evaluator
func NewEvaluator() *Evaluator {
	env, err := cel.NewEnv(
		cel.Declarations(
			decls.NewVar("cells", decls.NewMapType(decls.String, decls.Double)),
		),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create CEL environment: %v", err))
	}

	return &Evaluator{
		env:   env,
		cache: make(map[string]cel.Program),
	}
}

// Check evaluates a boolean assertion against values
func (e *Evaluator) Check(ctx context.Context, expression string, values map[string]float64) (bool, error) {
	program, err := e.getProgram(expression)
	if err != nil {
		return false, fmt.Errorf("failed to compile expression: %w", err)
	}

	out, _, err := program.ContextEval(ctx, map[string]interface{}{
		"cells": values,
	})
	if err != nil {
		return false, fmt.Errorf("evaluation failed: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression returned %T, expected bool", out.Value())
	}
	return result, nil
}

// CheckResult is the outcome of one assertion
type CheckResult struct {
	Expression string
	Passed     bool
	Err        error
}

// CheckAll evaluates every expression and reports each outcome in order.
func (e *Evaluator) CheckAll(ctx context.Context, expressions []string, values map[string]float64) []CheckResult {
	results := make([]CheckResult, 0, len(expressions))
	for _, expr := range expressions {
		passed, err := e.Check(ctx, expr, values)
		results = append(results, CheckResult{Expression: expr, Passed: passed, Err: err})
	}
	return results
}

// getProgram gets a compiled program from cache or compiles it
func (e *Evaluator) getProgram(expression string) (cel.Program, error) {
	e.mu.RLock()
	if program, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return program, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if program, ok := e.cache[expression]; ok {
		return program, nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("parse error: %w", issues.Err())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program generation error: %w", err)
	}

	e.cache[expression] = program
	return program, nil
}

// ValidateExpression compiles an assertion and checks that it yields a bool
func (e *Evaluator) ValidateExpression(expression string) error {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return issues.Err()
	}

	if !ast.OutputType().IsExactType(cel.BoolType) {
		return fmt.Errorf("expression must return bool, got %s", ast.OutputType())
	}
	return nil
}
