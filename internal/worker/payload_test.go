package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aescanero/dago-node-sheet/internal/config"
	"github.com/aescanero/dago-node-sheet/internal/engine"
	"github.com/aescanero/dago-node-sheet/internal/input"
	"github.com/aescanero/dago-node-sheet/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func evaluate(t *testing.T, cells []input.RawCell) *engine.Result {
	t.Helper()
	eng, err := engine.New(&config.Config{Strategy: "fixedpoint"}, zap.NewNop())
	require.NoError(t, err)
	res, err := eng.Evaluate(context.Background(), cells)
	require.NoError(t, err)
	return res
}

func TestParseRequest(t *testing.T) {
	req, err := parseRequest(map[string]interface{}{
		"data": `{"sheet_id":"s-1","cells":[{"name":"A","formula":"1"},{"name":"B","formula":"A 2 *"}]}`,
	})
	require.NoError(t, err)
	assert.Equal(t, "s-1", req.SheetID)
	assert.Equal(t, []input.RawCell{{Name: "A", Formula: "1"}, {Name: "B", Formula: "A 2 *"}}, req.Cells)
}

func TestParseRequestErrors(t *testing.T) {
	for name, values := range map[string]map[string]interface{}{
		"missing data": {},
		"not a string": {"data": 42},
		"bad json":     {"data": "{"},
		"no sheet id":  {"data": `{"cells":[]}`},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseRequest(values)
			assert.Error(t, err)
		})
	}
}

func TestResolvedPayload(t *testing.T) {
	req := &Request{SheetID: "s-2"}
	res := evaluate(t, []input.RawCell{{Name: "A", Formula: "2"}, {Name: "B", Formula: "A 0 /"}})
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	payload := resolvedPayload(req, res, now)
	assert.Equal(t, "s-2", payload.SheetID)
	assert.Equal(t, []render.CellValue{
		{Name: "A", Value: 2, Text: "2.0"},
		{Name: "B", Value: 0, Text: "Infinity"},
	}, payload.Values)
	assert.Equal(t, "A\n2.0\nB\nInfinity\n", payload.Output)
	assert.Equal(t, now, payload.Timestamp)

	_, err := json.Marshal(payload)
	assert.NoError(t, err)
}

func TestFailedPayload(t *testing.T) {
	req := &Request{SheetID: "s-3"}
	res := evaluate(t, []input.RawCell{{Name: "X", Formula: "Y"}, {Name: "Y", Formula: "X"}})
	require.Error(t, res.Err)

	payload := failedPayload(req, res.Err, res, time.Now())
	assert.Equal(t, "Circular dependency between X and Y detected", payload.Error)
	assert.Equal(t, []string{"X", "Y"}, payload.Unresolved)
	assert.Equal(t, "Circular dependency between X and Y detected\n", payload.Output)
}
