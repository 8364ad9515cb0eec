package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/minaorangina/arcade"
	"github.com/minaorangina/arcade/config"
	"github.com/minaorangina/arcade/internal/random"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/store"
	"github.com/minaorangina/arcade/terminal"
)

func main() {
	logger := log.New(os.Stderr, "[ARCADE] ", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(err.Error())
	}

	var results store.ResultStore
	if cfg.ResultsDB != "" {
		results, err = store.OpenSQLiteResultStore(cfg.ResultsDB)
		if err != nil {
			logger.Fatal(err.Error())
		}
		defer results.Close()
	}

	rnd, err := random.New(cfg.Seed)
	if err != nil {
		logger.Fatal(err.Error())
	}

	reg := registry.Default()
	hub, err := arcade.NewHub(arcade.HubOpts{
		Registry: reg,
		Rand:     rnd,
		Frame:    cfg.FrameInterval,
		Results:  results,
		// session events would interleave with the prompt
		Logger: log.New(io.Discard, "", 0),
	})
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer hub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	plain := cfg.NoColor || !terminal.IsTerminal()
	session := terminal.NewSession(hub, reg, terminal.NewRenderer(os.Stdout, plain))
	if err := session.Run(ctx, os.Stdin); err != nil && err != context.Canceled {
		logger.Println(err.Error())
	}
}
