package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aescanero/dago-node-sheet/internal/config"
	"github.com/aescanero/dago-node-sheet/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunOnce(t *testing.T) {
	for name, tt := range map[string]struct {
		strategy string
		checks   []string
		in       string
		out      string
		code     int
	}{
		"acyclic": {
			in:   "3\nA\n1\nB\n2\nC\nA B +\n",
			out:  "A\n1.0\nB\n2.0\nC\n3.0\n",
			code: exitOK,
		},
		"reverse declaration": {
			strategy: "toposort",
			in:       "2\nD\nC 2 *\nC\n5\n",
			out:      "C\n5.0\nD\n10.0\n",
			code:     exitOK,
		},
		"cycle": {
			in:   "2\nX\nY\nY\nX\n",
			out:  "Circular dependency between X and Y detected\n",
			code: exitCycle,
		},
		"dangling": {
			in:   "1\nA\nB 1 +\n",
			out:  "Circular dependency between A and A detected\n",
			code: exitCycle,
		},
		"malformed": {
			in:   "1\nA\n1 2\n",
			out:  "malformed formula in cell A: operands left on the stack: 2 values\n",
			code: exitMalformed,
		},
		"failed check": {
			checks: []string{`cells["A"] > 1.0`},
			in:     "1\nA\n1\n",
			out:    "A\n1.0\n",
			code:   exitChecks,
		},
		"bad input": {
			in:   "two\n",
			code: exitError,
		},
	} {
		t.Run(name, func(t *testing.T) {
			strategy := tt.strategy
			if strategy == "" {
				strategy = "fixedpoint"
			}
			eng, err := engine.New(&config.Config{Strategy: strategy, Checks: tt.checks}, zap.NewNop())
			require.NoError(t, err)

			var out bytes.Buffer
			code := runOnce(context.Background(), eng, strings.NewReader(tt.in), &out, zap.NewNop())
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.out, out.String())
		})
	}
}

func TestInitLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "other"} {
		logger, err := initLogger(level)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}
