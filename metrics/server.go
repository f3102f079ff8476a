// Package metrics define telemetry primitives to use across components. it uses the prometheus format.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server exposes collected metrics over http.
type Server struct {
	logger *zap.Logger
	srv    *http.Server
	lis    net.Listener
	done   chan struct{}
}

// StartCollectingMetrics begins listening and supplying metrics on `addr`/metrics.
func StartCollectingMetrics(addr string, logger *zap.Logger) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &Server{
		logger: logger,
		srv:    &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		lis:    lis,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		err := s.srv.Serve(lis)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.Stringer("address", lis.Addr()))
	return s, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

// Stop shuts the server down and waits for it to exit.
func (s *Server) Stop(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)
	<-s.done
	return err
}
