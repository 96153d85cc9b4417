package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"noteagent/internal/adapter/utils"
	"noteagent/internal/config"
	"noteagent/internal/handlers"
	"noteagent/internal/middleware"
	"noteagent/pkg/logging"
)

type Server struct {
	httpServer *http.Server
	logger     *logging.Logger
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

func New(listenAddr string, handler *handlers.Handler, mw *middleware.Middleware) *Server {
	r := utils.GetRouter()

	r.Router.Get("/health", mw.Wrap(handler.HealthHandler))
	r.Router.Post("/api/v1/ask", mw.Wrap(handler.AskHandler))
	r.Router.Get("/api/v1/status", mw.Wrap(handler.StatusHandler))
	r.Router.Post("/api/v1/rebuild", mw.Wrap(handler.RebuildHandler))

	return &Server{
		httpServer: &http.Server{
			Addr:         listenAddr,
			Handler:      r.Router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
		logger: logging.NewLogger("Server"),
	}
}

func (s *Server) Run() {
	s.logger.Info("Server is listening", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server crashed", "error", err.Error(), "addr", s.httpServer.Addr)
	}
}

func (s *Server) ShutDownHandler(params ShutdownParams) {
	state := <-params.GracefulShutdown
	s.logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		s.httpServer.SetKeepAlivesEnabled(false)

		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("Could not shutdown gracefully", "error", err)
		}

		params.CloseServices()
		close(params.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		s.logger.Info("Forced shutdown")
		os.Exit(1)
	}
}
