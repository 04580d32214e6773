package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/dago-node-sheet/internal/config"
	"github.com/aescanero/dago-node-sheet/internal/engine"
	"github.com/aescanero/dago-node-sheet/internal/input"
	"github.com/aescanero/dago-node-sheet/internal/sheet"
	"github.com/aescanero/dago-node-sheet/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set at build time
	Version = "dev"
	// BuildTime is set at build time
	BuildTime = "unknown"
)

// Exit codes
const (
	exitOK        = 0
	exitError     = 1
	exitCycle     = 2
	exitMalformed = 3
	exitChecks    = 4
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(exitError)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(exitError)
	}

	logger.Info("starting sheet evaluator",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("mode", cfg.Mode),
	)
	logger.Debug("configuration loaded", zap.String("config", cfg.String()))

	eng, err := engine.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize engine", zap.Error(err))
		_ = logger.Sync()
		os.Exit(exitError)
	}

	var code int
	switch cfg.Mode {
	case config.ModeWorker:
		code = runWorker(cfg, eng, logger)
	default:
		code = runOnce(context.Background(), eng, os.Stdin, os.Stdout, logger)
	}

	_ = logger.Sync()
	os.Exit(code)
}

// runOnce evaluates the sheet on in and writes the listing or the failure
// report to out.
func runOnce(ctx context.Context, eng *engine.Engine, in io.Reader, out io.Writer, logger *zap.Logger) int {
	cells, err := input.Read(in)
	if err != nil {
		logger.Error("failed to read sheet", zap.Error(err))
		return exitError
	}

	result, err := eng.Evaluate(ctx, cells)
	if err != nil {
		logger.Error("failed to evaluate sheet", zap.Error(err))
		return exitError
	}

	if _, err := io.WriteString(out, result.Output); err != nil {
		logger.Error("failed to write output", zap.Error(err))
		return exitError
	}

	return exitCode(result.Err, logger)
}

func exitCode(err error, logger *zap.Logger) int {
	if err == nil {
		return exitOK
	}

	var cycle *sheet.CircularDependencyError
	var malformed *sheet.MalformedFormulaError
	switch {
	case errors.As(err, &cycle):
		return exitCycle
	case errors.As(err, &malformed):
		return exitMalformed
	case errors.Is(err, engine.ErrChecksFailed):
		logger.Warn("sheet checks failed", zap.Error(err))
		return exitChecks
	default:
		return exitError
	}
}

// runWorker serves sheet requests from Redis until interrupted
func runWorker(cfg *config.Config, eng *engine.Engine, logger *zap.Logger) int {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", zap.Error(err))
		return exitError
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	store := worker.NewResultStore(redisClient, cfg.ResultTTL)
	w := worker.NewWorker(cfg, redisClient, eng, store, logger)
	if err := w.Start(); err != nil {
		logger.Error("failed to start worker", zap.Error(err))
		return exitError
	}

	healthServer := worker.NewHealthServer(cfg.HealthPort, redisClient, w, store, logger)
	if err := healthServer.Start(); err != nil {
		logger.Error("failed to start health server", zap.Error(err))
		return exitError
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("sheet worker running, press Ctrl+C to stop")
	<-sigChan

	logger.Info("shutdown signal received, stopping worker")

	if err := healthServer.Stop(); err != nil {
		logger.Error("failed to stop health server", zap.Error(err))
	}

	if err := w.Stop(); err != nil {
		logger.Error("failed to stop worker", zap.Error(err))
	}

	return exitOK
}

// initLogger initializes the logger. Logs go to stderr; stdout is reserved
// for sheet output.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.WarnLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
