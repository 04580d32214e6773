package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	for name, tt := range map[string]struct {
		in     string
		expect []RawCell
	}{
		"example": {
			in: "3\nA\n1\nB\n2\nC\nA B +\n",
			expect: []RawCell{
				{Name: "A", Formula: "1"},
				{Name: "B", Formula: "2"},
				{Name: "C", Formula: "A B +"},
			},
		},
		"crlf": {
			in:     "1\r\nD\r\nC 2 *\r\n",
			expect: []RawCell{{Name: "D", Formula: "C 2 *"}},
		},
		"no trailing newline": {
			in:     "1\nX\nY",
			expect: []RawCell{{Name: "X", Formula: "Y"}},
		},
		"empty": {
			in:     "0\n",
			expect: []RawCell{},
		},
	} {
		t.Run(name, func(t *testing.T) {
			cells, err := Read(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.expect, cells)
		})
	}
}

func TestReadErrors(t *testing.T) {
	for name, in := range map[string]string{
		"no count":  "",
		"bad count": "three\n",
		"negative":  "-1\n",
		"truncated": "2\nA\n1\nB\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestReadTruncated(t *testing.T) {
	_, err := Read(strings.NewReader("1\nA\n"))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestSheetLastDefinitionWins(t *testing.T) {
	s := Sheet([]RawCell{{Name: "A", Formula: "1"}, {Name: "A", Formula: "7"}})
	v, err := s.Value("A")
	require.NoError(t, err)
	assert.Equal(t, float64(7), v)
}
