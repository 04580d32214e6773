package worker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aescanero/dago-node-sheet/internal/engine"
	"github.com/aescanero/dago-node-sheet/internal/input"
	"github.com/aescanero/dago-node-sheet/internal/render"
)

// Request is a sheet evaluation request
type Request struct {
	SheetID string          `json:"sheet_id"`
	Cells   []input.RawCell `json:"cells"`
}

// Resolved is the published result of a sheet that resolved
type Resolved struct {
	SheetID   string             `json:"sheet_id"`
	Values    []render.CellValue `json:"values"`
	Output    string             `json:"output"`
	Checks    []CheckOutcome     `json:"checks,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// Failed is the published result of a sheet that did not resolve
type Failed struct {
	SheetID    string    `json:"sheet_id"`
	Error      string    `json:"error"`
	Unresolved []string  `json:"unresolved,omitempty"`
	Output     string    `json:"output,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// CheckOutcome reports one assertion
type CheckOutcome struct {
	Expression string `json:"expression"`
	Passed     bool   `json:"passed"`
	Error      string `json:"error,omitempty"`
}

// parseRequest parses a request from a Redis message
func parseRequest(values map[string]interface{}) (*Request, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request Request
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet request: %w", err)
	}

	if request.SheetID == "" {
		return nil, fmt.Errorf("sheet_id is required")
	}

	return &request, nil
}

// resolvedPayload builds the success message. Values are not JSON-safe when
// non-finite, so they are carried in Text and Value is zeroed.
func resolvedPayload(request *Request, result *engine.Result, now time.Time) *Resolved {
	values := render.Values(result.Sheet)
	for i := range values {
		if !isFinite(values[i].Value) {
			values[i].Value = 0
		}
	}

	checks := make([]CheckOutcome, 0, len(result.Checks))
	for _, c := range result.Checks {
		o := CheckOutcome{Expression: c.Expression, Passed: c.Passed}
		if c.Err != nil {
			o.Error = c.Err.Error()
		}
		checks = append(checks, o)
	}

	return &Resolved{
		SheetID:   request.SheetID,
		Values:    values,
		Output:    result.Output,
		Checks:    checks,
		Timestamp: now.UTC(),
	}
}

// failedPayload builds the failure message
func failedPayload(request *Request, err error, result *engine.Result, now time.Time) *Failed {
	f := &Failed{
		SheetID:   request.SheetID,
		Error:     err.Error(),
		Timestamp: now.UTC(),
	}
	if result != nil {
		f.Unresolved = result.Unresolved()
		f.Output = result.Output
	}
	return f
}

func isFinite(v float64) bool {
	return v-v == 0
}
