package worker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", p.err)
}

type fakeStats struct{}

func (fakeStats) Stats() (int64, int64) { return 5, 2 }

func get(t *testing.T, hs *HealthServer, path string) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	hs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestHealthy(t *testing.T) {
	hs := NewHealthServer(0, fakePinger{}, fakeStats{}, nil, zap.NewNop())

	rec, resp := get(t, hs, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Checks["redis"])
	require.NotNil(t, resp.Processed)
	assert.Equal(t, int64(5), *resp.Processed)
	assert.Equal(t, int64(2), *resp.Failed)

	rec, resp = get(t, hs, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", resp.Status)
}

func TestUnhealthy(t *testing.T) {
	hs := NewHealthServer(0, fakePinger{err: errors.New("connection refused")}, nil, nil, zap.NewNop())

	rec, resp := get(t, hs, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Checks["redis"], "connection refused")
	assert.Nil(t, resp.Processed)

	rec, resp = get(t, hs, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not ready", resp.Status)
}

func TestStopWithoutStart(t *testing.T) {
	assert.NoError(t, NewHealthServer(0, fakePinger{}, nil, nil, zap.NewNop()).Stop())
}
