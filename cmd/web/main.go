package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/sheepshead/config"
	"github.com/minaorangina/sheepshead/internal/logging"
	"github.com/minaorangina/sheepshead/server"
	"github.com/minaorangina/sheepshead/store"
	"go.uber.org/zap"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewServer(server.ServerOpts{
		Store:       store.NewInMemoryGameStore(logger),
		Rules:       cfg.Rules(),
		TokenSecret: cfg.TokenSecret,
		TokenTTL:    cfg.TokenTTL,
		StaticDir:   cfg.StaticDir,
		Logger:      logger,
		Context:     ctx,
	})
	s.Addr = cfg.Addr()

	go func() {
		logger.Info("listening", zap.String("addr", s.Addr), zap.Bool("house_rule", cfg.RequirePickerHasSuitToCall))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Error("unclean shutdown", zap.Error(err))
	}
}
