// Package server exposes the announcement form and the board generation
// endpoint over HTTP.
package server

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mazadly/boardgen/board"
	"github.com/mazadly/boardgen/cache"
)

//go:embed index.html
var indexHTML []byte

// Renderer produces a board PDF from a validated announcement.
type Renderer interface {
	Render(ctx context.Context, a *board.Announcement) ([]byte, error)
}

// Options configures the HTTP server.
type Options struct {
	Addr           string
	MaxBodyBytes   int64
	AllowedOrigins []string
}

// Server wires the renderer and result cache into a gin engine.
type Server struct {
	renderer Renderer
	store    cache.Store
	opts     Options
	engine   *gin.Engine
}

// New builds the routing table. store may be nil to disable caching.
func New(renderer Renderer, store cache.Store, opts Options) *Server {
	s := &Server{renderer: renderer, store: store, opts: opts}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	}
	engine.Use(cors.New(corsConfig))

	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/api/schema", s.handleSchema)
	engine.POST("/api/board", s.handleBoard)

	s.engine = engine
	return s
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
