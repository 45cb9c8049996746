package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hot-product-trends/internal/config"
	"hot-product-trends/internal/feed"
)

// ProductFetcher is the slice of the feed client the handlers need.
type ProductFetcher interface {
	FetchHotProducts(ctx context.Context, category string, page int) ([]feed.Product, error)
	FetchCategories(ctx context.Context) (json.RawMessage, error)
}

// ProductSink receives fetched products for detached persistence.
type ProductSink interface {
	PersistBestEffort(products []feed.Product)
}

// Server wires the HTTP surface around the ingestion pipeline.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// New constructs the HTTP server with routes and middleware installed.
func New(cfg config.ServerConfig, fetcher ProductFetcher, sink ProductSink, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "http_server").Logger()

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(requestID(), requestLogger(logger), gin.Recovery())

	h := &handlers{fetcher: fetcher, sink: sink, logger: logger}

	engine.GET("/healthz", h.health)
	engine.GET("/products", h.products)
	engine.GET("/categories", h.categories)
	engine.GET("/trend-summary", h.trendSummary)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{httpServer: httpServer, logger: logger}
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until the listener fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
