package app

import (
	"fmt"

	"github.com/phu024/elearning-rag-platform/internal/platform/aiclient"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
	"github.com/phu024/elearning-rag-platform/internal/platform/rediscache"
	"github.com/phu024/elearning-rag-platform/internal/platform/s3store"
)

type Clients struct {
	Bucket s3store.BucketService
	Cache  rediscache.Cache
	AI     aiclient.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	bucket, err := s3store.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init object store: %w", err)
	}

	cache := rediscache.Noop()
	if cfg.RedisEnabled {
		cache, err = rediscache.New(log)
		if err != nil {
			// Redis only accelerates signed URL reuse; run without it.
			log.Warn("Redis init failed, continuing without cache", "error", err)
			cache = rediscache.Noop()
		}
	}

	return Clients{
		Bucket: bucket,
		Cache:  cache,
		AI:     aiclient.New(log),
	}, nil
}
