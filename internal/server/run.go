package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manav03panchal/chronos/internal/logging"
)

// RunOptions configures Run.
type RunOptions struct {
	Addr            string
	ShutdownTimeout time.Duration
	// PIDFile is acquired for the lifetime of the server when set.
	PIDFile *PIDFile
	// Ready receives the bound address once the listener is open.
	Ready func(addr string)
}

// Run serves until ctx is cancelled or SIGINT, SIGTERM or SIGHUP arrives,
// then drains in-flight requests within ShutdownTimeout.
func (s *Server) Run(ctx context.Context, opts RunOptions) error {
	if opts.PIDFile != nil {
		if err := opts.PIDFile.Acquire(); err != nil {
			return err
		}
		defer func() {
			if err := opts.PIDFile.Release(); err != nil {
				logging.Warn("pid file not removed", logging.KeyError, err)
			}
		}()
	}

	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	addr := ln.Addr().String()
	logging.Info("server listening", "addr", addr, "version", s.version)
	if opts.Ready != nil {
		opts.Ready(addr)
	}

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logging.Info("server shutting down", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
