package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aescanero/dago-node-sheet/internal/config"
	"github.com/aescanero/dago-node-sheet/internal/engine"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Worker consumes sheet requests from a Redis stream
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	engine        *engine.Engine
	store         Store
	publisher     Publisher
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	streamKey     string
	consumerGroup string
	resultStream  string
	processed     atomic.Int64
	failed        atomic.Int64
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	eng *engine.Engine,
	store Store,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		engine:        eng,
		store:         store,
		publisher:     NewStreamPublisher(redisClient),
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting sheet worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	w.wg.Add(1)
	go w.processWork()

	w.logger.Info("sheet worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight sheet to finish
func (w *Worker) Stop() error {
	w.logger.Info("stopping sheet worker", zap.String("worker_id", w.id))

	w.cancel()
	w.wg.Wait()

	w.logger.Info("sheet worker stopped",
		zap.String("worker_id", w.id),
		zap.Int64("processed", w.processed.Load()),
		zap.Int64("failed", w.failed.Load()),
	)
	return nil
}

// Stats returns the number of sheets processed and how many of them failed
func (w *Worker) Stats() (processed, failed int64) {
	return w.processed.Load(), w.failed.Load()
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork reads requests from the stream until the worker is stopped
func (w *Worker) processWork() {
	defer w.wg.Done()
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
		}

		streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
			Group:    w.consumerGroup,
			Consumer: w.id,
			Streams:  []string{w.streamKey, ">"},
			Count:    1,
			Block:    w.config.BlockTime,
		}).Result()

		if err != nil {
			if err == redis.Nil || w.ctx.Err() != nil {
				continue
			}
			w.logger.Error("failed to read from stream", zap.Error(err))
			select {
			case <-w.ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				w.handleMessage(w.ctx, message)
				w.acknowledgeMessage(message.ID)
			}
		}
	}
}

// handleMessage evaluates a single request and publishes the outcome
func (w *Worker) handleMessage(ctx context.Context, message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing sheet request", zap.String("message_id", messageID))
	w.processed.Add(1)

	request, err := parseRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse sheet request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.failed.Add(1)
		return
	}

	result, err := w.engine.Evaluate(ctx, request.Cells)
	if err != nil {
		w.failed.Add(1)
		w.publishFailure(ctx, request, err, nil)
		return
	}

	if result.Err != nil {
		w.failed.Add(1)
		w.logger.Warn("sheet did not resolve",
			zap.String("sheet_id", request.SheetID),
			zap.Error(result.Err),
		)
		w.publishFailure(ctx, request, result.Err, result)
		return
	}

	if err := w.publishResolved(ctx, request, result); err != nil {
		w.logger.Error("failed to publish sheet result",
			zap.String("sheet_id", request.SheetID),
			zap.Error(err),
		)
	}
}

// publishResolved stores and publishes a resolved sheet
func (w *Worker) publishResolved(ctx context.Context, request *Request, result *engine.Result) error {
	payload := resolvedPayload(request, result, time.Now())

	if err := w.store.Save(ctx, request.SheetID, payload); err != nil {
		return err
	}

	if err := w.publisher.Publish(ctx, w.resultStream, payload); err != nil {
		return err
	}

	w.logger.Info("published sheet result",
		zap.String("sheet_id", request.SheetID),
		zap.Int("cells", len(payload.Values)),
	)
	return nil
}

// publishFailure stores a failure and publishes it to the errors stream
func (w *Worker) publishFailure(ctx context.Context, request *Request, err error, result *engine.Result) {
	payload := failedPayload(request, err, result, time.Now())

	if saveErr := w.store.Save(ctx, request.SheetID, payload); saveErr != nil {
		w.logger.Error("failed to store failure", zap.Error(saveErr))
	}

	if pubErr := w.publisher.Publish(ctx, w.resultStream+".errors", payload); pubErr != nil {
		w.logger.Error("failed to publish failure", zap.Error(pubErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	// The worker context may already be cancelled during shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
