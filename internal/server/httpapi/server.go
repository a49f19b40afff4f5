// Package httpapi exposes the bookshelf services over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Pinger reports database reachability for the health endpoint.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options holds transport settings that do not belong to the services.
type Options struct {
	Address         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

type HTTPServer struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	users           *services.UserService
	books           *services.BookService
	db              Pinger
	engine          *gin.Engine
}

func NewHTTPServer(opts Options, l logging.Logger, us *services.UserService, bs *services.BookService, db Pinger) *HTTPServer {
	s := &HTTPServer{
		address:         opts.Address,
		shutdownTimeout: opts.ShutdownTimeout,
		logger:          l.With("module", "http_server"),
		users:           us,
		books:           bs,
		db:              db,
	}
	s.engine = s.routes(opts.AllowedOrigins)
	return s
}

// Handler returns the configured gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	if len(origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = origins
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
		corsConfig.ExposeHeaders = []string{"X-Request-ID"}
		r.Use(cors.New(corsConfig))
	}

	r.GET("/health", s.health)
	r.POST("/register", s.register)
	r.POST("/login", s.login)

	protected := r.Group("")
	protected.Use(s.authenticate())
	{
		protected.GET("/me", s.me)
		protected.POST("/books", s.createBook)
		protected.GET("/books", s.listBooks)
		protected.PUT("/books/:id", s.updateBook)
		protected.DELETE("/books/:id", s.deleteBook)
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
