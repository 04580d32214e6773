package cel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	values := map[string]float64{"A": 1, "B": 2, "C": 3}
	evaluator := NewEvaluator()

	for name, tt := range map[string]struct {
		expr   string
		expect bool
	}{
		"sum":      {expr: `cells["C"] == cells["A"] + cells["B"]`, expect: true},
		"compare":  {expr: `cells["A"] > cells["B"]`, expect: false},
		"presence": {expr: `"D" in cells`, expect: false},
		"size":     {expr: `size(cells) == 3`, expect: true},
		"all":      {expr: `cells.all(k, cells[k] >= 1.0)`, expect: true},
	} {
		t.Run(name, func(t *testing.T) {
			ok, err := evaluator.Check(context.Background(), tt.expr, values)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, ok)
		})
	}
}

func TestCheckErrors(t *testing.T) {
	evaluator := NewEvaluator()
	ctx := context.Background()

	_, err := evaluator.Check(ctx, `cells["A"] +`, nil)
	assert.Error(t, err)

	_, err = evaluator.Check(ctx, `cells["A"]`, map[string]float64{"A": 1})
	assert.Error(t, err)

	_, err = evaluator.Check(ctx, `cells["missing"] > 0.0`, map[string]float64{})
	assert.Error(t, err)
}

func TestCheckAll(t *testing.T) {
	results := NewEvaluator().CheckAll(context.Background(),
		[]string{`cells["A"] == 1.0`, `cells["A"] == 2.0`},
		map[string]float64{"A": 1},
	)
	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.NoError(t, results[1].Err)
}

func TestValidateExpression(t *testing.T) {
	evaluator := NewEvaluator()
	assert.NoError(t, evaluator.ValidateExpression(`cells["A"] < 10.0`))
	assert.Error(t, evaluator.ValidateExpression(`cells["A"] * 2.0`))
	assert.Error(t, evaluator.ValidateExpression(`cells[`))
}
