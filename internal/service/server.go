package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server runs the HTTP API and, when configured, the rent reminder cron
// for the same lifetime.
type Server struct {
	httpServer *http.Server
	reminder   *RentReminder
	logger     *zap.Logger
}

func NewServer(addr string, handler http.Handler, reminder *RentReminder, logger *zap.Logger) *Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return &Server{httpServer: s, reminder: reminder, logger: logger}
}

// Start blocks until the listener fails or Stop is called. A clean stop
// returns nil. The reminder does not outlive a failed listener.
func (s *Server) Start() error {
	if s.reminder != nil {
		if err := s.reminder.Start(); err != nil {
			return err
		}
	}
	s.logger.Info("Starting digiplot HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		if s.reminder != nil {
			s.reminder.Stop()
		}
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping digiplot HTTP server")
	if s.reminder != nil {
		s.reminder.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
