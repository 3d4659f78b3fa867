// Package reader serves sutra documents to the web reader.
package reader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/dizang-faith/dizang-faith-web/internal/crawler"
	"github.com/dizang-faith/dizang-faith-web/internal/index"
	"github.com/dizang-faith/dizang-faith-web/internal/storage"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	SutrasDir string
	StaticDir string
	// Store serves the catalog when set; otherwise SutrasDir is scanned per request.
	Store  storage.CatalogStore
	Logger *slog.Logger
}

// Server exposes the sutra directory over HTTP.
type Server struct {
	dir       string
	staticDir string
	store     storage.CatalogStore
	indexer   *index.Indexer
	logger    *slog.Logger
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		dir:       opts.SutrasDir,
		staticDir: opts.StaticDir,
		store:     opts.Store,
		indexer:   index.NewIndexer(crawler.NewCrawler()),
		logger:    logger,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		sutras := api.Group("/sutras")
		sutras.GET("", s.listSutras)
		sutras.GET("/:id", s.getSutra)
		sutras.GET("/:id/chapters/:index", s.getChapter)
	}

	if s.staticDir != "" {
		r.Static("/static", s.staticDir)
		r.StaticFile("/", filepath.Join(s.staticDir, "index.html"))
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("reader listening", "addr", addr, "dir", s.dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("reader shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
