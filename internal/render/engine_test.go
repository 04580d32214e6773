package render

import (
	"testing"

	"github.com/aescanero/dago-node-sheet/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resolved(t *testing.T, raw map[string]string) (*sheet.Sheet, error) {
	t.Helper()
	r, err := sheet.NewResolver(sheet.StrategyFixedPoint, zap.NewNop())
	require.NoError(t, err)
	s := sheet.FromMap(raw)
	return s, r.Resolve(s)
}

func TestSuccessDefault(t *testing.T) {
	s, err := resolved(t, map[string]string{"C": "A B +", "B": "2", "A": "1"})
	require.NoError(t, err)

	out, err := NewEngine("", "").Success(s)
	require.NoError(t, err)
	assert.Equal(t, "A\n1.0\nB\n2.0\nC\n3.0\n", out)
}

func TestSuccessReverseOrder(t *testing.T) {
	s, err := resolved(t, map[string]string{"D": "C 2 *", "C": "5"})
	require.NoError(t, err)

	out, err := NewEngine("", "").Success(s)
	require.NoError(t, err)
	assert.Equal(t, "C\n5.0\nD\n10.0\n", out)
}

func TestSuccessDoesNotEscape(t *testing.T) {
	s, err := resolved(t, map[string]string{"a&b": "1"})
	require.NoError(t, err)

	out, err := NewEngine("", "").Success(s)
	require.NoError(t, err)
	assert.Equal(t, "a&b\n1.0\n", out)
}

func TestFailureDefault(t *testing.T) {
	_, err := resolved(t, map[string]string{"X": "Y", "Y": "X"})
	require.Error(t, err)

	out, rerr := NewEngine("", "").Failure(err)
	require.NoError(t, rerr)
	assert.Equal(t, "Circular dependency between X and Y detected\n", out)
}

func TestCustomTemplates(t *testing.T) {
	engine := NewEngine(
		"{{count}}:{{#each cells}} {{name}}={{float value}}{{/each}}",
		"{{uppercase (join unresolved \",\")}}",
	)
	require.NoError(t, engine.Validate())

	s, err := resolved(t, map[string]string{"a": "4", "b": "a 2 /"})
	require.NoError(t, err)
	out, err := engine.Success(s)
	require.NoError(t, err)
	assert.Equal(t, "2: a=4.0 b=2.0", out)

	_, err = resolved(t, map[string]string{"x": "y"})
	require.Error(t, err)
	out, err = engine.Failure(err)
	require.NoError(t, err)
	assert.Equal(t, "X", out)
}

func TestValidateRejectsBadTemplate(t *testing.T) {
	assert.Error(t, NewEngine("{{#each cells}}", "").Validate())
}

func TestValues(t *testing.T) {
	s, err := resolved(t, map[string]string{"b": "1 0 /", "a": "2"})
	require.NoError(t, err)
	assert.Equal(t, []CellValue{
		{Name: "a", Value: 2, Text: "2.0"},
		{Name: "b", Value: s.Values()["b"], Text: "Infinity"},
	}, Values(s))
}
