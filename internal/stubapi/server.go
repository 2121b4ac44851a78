package stubapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pointcard/internal/config"
	"pointcard/internal/logger"
)

const defaultTokenLifetime = 24 * time.Hour

type Server struct {
	cfg         *config.Config
	httpHandler http.Handler
}

func NewServer() (*Server, error) {
	var err error
	server := &Server{}

	server.cfg, err = config.New(config.WithDisableFlagsParsing(true))
	if err != nil {
		return nil, err
	}

	err = logger.Init(server.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	signingSecretKey, err := base64.URLEncoding.DecodeString(server.cfg.AuthTokenSigningSecretKey)
	if err != nil {
		return nil, err
	}

	server.httpHandler = NewRouter(
		NewStore(),
		NewAuth(signingSecretKey, defaultTokenLifetime),
	)

	return server, nil
}

func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("stub backend running", "StubRunAddr", s.cfg.StubRunAddr)

	server := &http.Server{
		Addr:    s.cfg.StubRunAddr,
		Handler: s.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *Server) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}
