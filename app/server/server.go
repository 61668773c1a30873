// Package server wires the HTTP surface: routing, format negotiation,
// request logging and graceful shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// HTTPServer wraps the standard server with graceful shutdown.
type HTTPServer struct {
	httpServer *http.Server
}

func New(addr string, handler http.Handler) HTTPServer {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return HTTPServer{s}
}

// Run serves until the listener fails or Close is called. stopFn is
// invoked on exit so the host process can unwind.
func (s HTTPServer) Run(stopFn context.CancelFunc) {
	const op = "HTTPServer.Run"
	log := slog.With("op", op)

	defer stopFn()
	err := s.httpServer.ListenAndServe()
	if err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return
		}
		log.Error("server stopped unexpectedly", "err", err)
	}
}

func (s HTTPServer) Close(ctx context.Context) {
	const op = "HTTPServer.Close"
	log := slog.With("op", op)

	log.Info("closing http server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error("shutdown was not graceful", "err", err)
	}
}
