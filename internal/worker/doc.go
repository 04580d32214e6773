// Package worker serves sheet evaluation requests from a Redis Stream.
//
// The worker joins a consumer group on the work stream, evaluates each sheet
// it receives, stores the result, and publishes it to the result stream.
// Sheets that fail to resolve are published to "<result stream>.errors".
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	eng, _ := engine.New(cfg, logger)
//
//	store := worker.NewResultStore(redisClient, cfg.ResultTTL)
//	w := worker.NewWorker(cfg, redisClient, eng, store, logger)
//	if err := w.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//
// A request message carries a single "data" field:
//
//	{"sheet_id": "s-1", "cells": [{"name": "A", "formula": "1"}, {"name": "B", "formula": "A 2 *"}]}
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8083, redisClient, w, store, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
