// Package server assembles the HTTP handlers of jadwalrapat and runs them
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
)

// ShutdownTimeout bounds how long open requests may take to finish on shutdown
const ShutdownTimeout = 10 * time.Second

// Controller registers its routes on a router
type Controller interface {
	Register(router *mux.Router)
}

// Server is the HTTP server of jadwalrapat
type Server struct {
	httpServer *http.Server
	accessLog  *zapio.Writer
}

// New creates a server listening on addr that serves the given controllers
func New(addr string, controllers ...Controller) *Server {
	accessLog := &zapio.Writer{
		Log:   zap.L().With(zap.String("section", "access")),
		Level: zapcore.InfoLevel,
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      NewHandler(zapcore.Lock(zapcore.AddSync(accessLog)), controllers...),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0, // SSE responses stay open
			IdleTimeout:  60 * time.Second,
		},
		accessLog: accessLog,
	}
}

// NewHandler builds the router for the controllers and wraps it with the
// shared middleware chain. Access log lines are written to accessLog.
func NewHandler(accessLog io.Writer, controllers ...Controller) http.Handler {
	router := mux.NewRouter()
	for _, c := range controllers {
		c.Register(router)
	}

	var h http.Handler = router
	h = RequestIDMiddleware(h)
	h = HTTPProtocolMiddleware(h)
	h = handlers.CombinedLoggingHandler(accessLog, h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(zap.L().With(zap.String("section", "recovery")))),
		handlers.PrintRecoveryStack(true),
	)(h)

	return h
}

// OnShutdown registers fn to run when shutdown starts, while requests drain
func (s *Server) OnShutdown(fn func()) {
	s.httpServer.RegisterOnShutdown(fn)
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves requests on ln until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer func() { _ = s.accessLog.Close() }()

	serverErrors := make(chan error, 1)
	go func() {
		zap.L().Info("serving requests", zap.String("addr", "http://"+ln.Addr().String()))
		serverErrors <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve http requests: %w", err)
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		_ = s.httpServer.Close()
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	zap.L().Info("server gracefully stopped")
	return nil
}
