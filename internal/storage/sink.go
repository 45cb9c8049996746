package storage

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"hot-product-trends/internal/feed"
)

// Sink performs best-effort, fire-and-forget persistence of normalized
// products. A write failure is logged and discarded; it never reaches the
// caller, and the caller never waits on the write.
type Sink struct {
	store   ProductStore
	logger  zerolog.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

// NewSink wires a product store into a detached sink.
func NewSink(store ProductStore, timeout time.Duration, logger zerolog.Logger) *Sink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sink{
		store:   store,
		logger:  logger.With().Str("component", "persistence_sink").Logger(),
		timeout: timeout,
	}
}

// PersistBestEffort maps products to storage documents stamped with the
// write time and inserts them on a detached goroutine. Returns immediately;
// empty input attempts no write. There is no ordering guarantee between the
// caller's response and write completion, and an in-flight write may be lost
// on process exit.
func (s *Sink) PersistBestEffort(products []feed.Product) {
	if s == nil || s.store == nil || len(products) == 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		fetchedAt := time.Now().UTC()
		docs := make([]ProductDocument, 0, len(products))
		for _, p := range products {
			docs = append(docs, DocumentFromProduct(p, fetchedAt))
		}

		if err := s.store.InsertProducts(ctx, docs); err != nil {
			s.logger.Error().Err(err).Int("count", len(docs)).Msg("best-effort persist failed")
			return
		}
		s.logger.Info().Int("count", len(docs)).Msg("products persisted")
	}()
}

// Wait blocks until all in-flight writes finish. Intended for tests and
// shutdown paths; request handlers must not call it.
func (s *Sink) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}
