package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Pinger is the part of a Redis client the health checks need
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// StatsProvider reports sheet counters
type StatsProvider interface {
	Stats() (processed, failed int64)
}

// ResultLoader looks up stored sheet results
type ResultLoader interface {
	Load(ctx context.Context, sheetID string) (json.RawMessage, error)
}

// HealthServer provides HTTP health check endpoints and result lookup
type HealthServer struct {
	port    int
	redis   Pinger
	stats   StatsProvider
	results ResultLoader
	logger  *zap.Logger
	server  *http.Server
}

// NewHealthServer creates a new health server. stats and results may be nil;
// without results the /result endpoint is not registered.
func NewHealthServer(port int, redis Pinger, stats StatsProvider, results ResultLoader, logger *zap.Logger) *HealthServer {
	return &HealthServer{
		port:    port,
		redis:   redis,
		stats:   stats,
		results: results,
		logger:  logger,
	}
}

// Handler returns the health endpoints
func (hs *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hs.handleHealth)
	mux.HandleFunc("/ready", hs.handleReady)
	if hs.results != nil {
		mux.HandleFunc("GET /result/{id}", hs.handleResult)
	}
	return mux
}

// Start starts the health check server
func (hs *HealthServer) Start() error {
	hs.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", hs.port),
		Handler:           hs.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	hs.logger.Info("starting health server", zap.Int("port", hs.port))

	go func() {
		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			hs.logger.Error("health server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the health check server
func (hs *HealthServer) Stop() error {
	if hs.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hs.logger.Info("stopping health server")
	return hs.server.Shutdown(ctx)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Processed *int64            `json:"sheets_processed,omitempty"`
	Failed    *int64            `json:"sheets_failed,omitempty"`
}

// handleHealth handles the /health endpoint
func (hs *HealthServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Checks: make(map[string]string)}
	if hs.stats != nil {
		processed, failed := hs.stats.Stats()
		resp.Processed, resp.Failed = &processed, &failed
	}

	if err := hs.redis.Ping(ctx).Err(); err != nil {
		resp.Status = "unhealthy"
		resp.Checks["redis"] = fmt.Sprintf("unhealthy: %v", err)
		hs.respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.Status = "healthy"
	resp.Checks["redis"] = "healthy"
	hs.respondJSON(w, http.StatusOK, resp)
}

// handleReady handles the /ready endpoint
func (hs *HealthServer) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := hs.redis.Ping(ctx).Err(); err != nil {
		hs.respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not ready"})
		return
	}

	hs.respondJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
}

// handleResult handles the /result/{id} endpoint
func (hs *HealthServer) handleResult(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	sheetID := r.PathValue("id")
	data, err := hs.results.Load(ctx, sheetID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrResultNotFound) {
			status = http.StatusNotFound
		} else {
			hs.logger.Error("failed to load result",
				zap.String("sheet_id", sheetID),
				zap.Error(err),
			)
		}
		hs.respondJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	hs.respondJSON(w, http.StatusOK, data)
}

// respondJSON writes a JSON response
func (hs *HealthServer) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		hs.logger.Error("failed to encode response", zap.Error(err))
	}
}
