// Package engine ties resolution, assertions and rendering together so the
// command line and the stream worker evaluate sheets the same way.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/dago-node-sheet/internal/config"
	"github.com/aescanero/dago-node-sheet/internal/eval/cel"
	"github.com/aescanero/dago-node-sheet/internal/input"
	"github.com/aescanero/dago-node-sheet/internal/render"
	"github.com/aescanero/dago-node-sheet/internal/sheet"
	"go.uber.org/zap"
)

// ErrChecksFailed is returned in Result.Err when a sheet resolves but one of
// the configured assertions does not hold.
var ErrChecksFailed = errors.New("sheet checks failed")

// Result is the outcome of evaluating one sheet
type Result struct {
	Sheet  *sheet.Sheet
	Output string

	// Err is nil on success, or the resolution or check failure that
	// Output describes.
	Err    error
	Checks []cel.CheckResult
}

// Engine evaluates sheets
type Engine struct {
	resolver sheet.Resolver
	renderer *render.Engine
	checker  *cel.Evaluator
	checks   []string
	logger   *zap.Logger
}

// New creates an engine from configuration. Templates and checks are
// validated up front.
func New(cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	resolver, err := sheet.NewResolver(sheet.Strategy(cfg.Strategy), logger)
	if err != nil {
		return nil, err
	}

	renderer := render.NewEngine(cfg.SuccessTemplate, cfg.FailureTemplate)
	if err := renderer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	checker := cel.NewEvaluator()
	for _, expr := range cfg.Checks {
		if err := checker.ValidateExpression(expr); err != nil {
			return nil, fmt.Errorf("invalid check %q: %w", expr, err)
		}
	}

	return &Engine{
		resolver: resolver,
		renderer: renderer,
		checker:  checker,
		checks:   cfg.Checks,
		logger:   logger,
	}, nil
}

// Evaluate resolves cells and renders the outcome. A sheet that fails to
// resolve is not an error here: the failure is rendered into Output and
// returned in Result.Err. The returned error is for rendering problems only.
func (e *Engine) Evaluate(ctx context.Context, cells []input.RawCell) (*Result, error) {
	s := input.Sheet(cells)
	e.logger.Debug("evaluating sheet", zap.Int("cells", s.Len()))

	if err := e.resolver.Resolve(s); err != nil {
		out, rerr := e.renderer.Failure(err)
		if rerr != nil {
			return nil, fmt.Errorf("failed to render failure: %w", rerr)
		}
		return &Result{Sheet: s, Output: out, Err: err}, nil
	}

	out, err := e.renderer.Success(s)
	if err != nil {
		return nil, fmt.Errorf("failed to render sheet: %w", err)
	}
	result := &Result{Sheet: s, Output: out}

	if len(e.checks) == 0 {
		return result, nil
	}

	result.Checks = e.checker.CheckAll(ctx, e.checks, s.Values())
	var failed []string
	for _, c := range result.Checks {
		if c.Err != nil {
			e.logger.Warn("check could not be evaluated",
				zap.String("check", c.Expression),
				zap.Error(c.Err),
			)
		}
		if !c.Passed {
			failed = append(failed, c.Expression)
		}
	}
	if len(failed) > 0 {
		result.Err = fmt.Errorf("%w: %q", ErrChecksFailed, failed)
	}
	return result, nil
}

// Unresolved returns the names reported by a circular dependency failure
func (r *Result) Unresolved() []string {
	var cycle *sheet.CircularDependencyError
	if errors.As(r.Err, &cycle) {
		return cycle.Names
	}
	return nil
}
