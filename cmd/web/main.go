package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/arcade/config"
	"github.com/minaorangina/arcade/server"
	"github.com/minaorangina/arcade/store"
)

func main() {
	logger := log.New(os.Stderr, "[ARCADE] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err.Error())
	}

	var results store.ResultStore = store.NewInMemoryResultStore()
	if cfg.ResultsDB != "" {
		results, err = store.OpenSQLiteResultStore(cfg.ResultsDB)
		if err != nil {
			logger.Fatal(err.Error())
		}
	}
	defer results.Close()

	s := server.NewServer(server.ServerOpts{
		Results:        results,
		Seed:           cfg.Seed,
		Frame:          cfg.FrameInterval,
		IdleTimeout:    cfg.IdleTimeout,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
		AccessLog:      os.Stdout,
	})
	s.Addr = cfg.Addr()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("Listening on port %d...", cfg.Port)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err.Error())
		}
	}()

	<-ctx.Done()
	logger.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Println(err.Error())
	}
	s.CloseArcades()
}
