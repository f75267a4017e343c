package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hongminglow/grocery-cli/internal/app"
	"github.com/hongminglow/grocery-cli/internal/config"
	"github.com/hongminglow/grocery-cli/internal/console"
	"github.com/hongminglow/grocery-cli/internal/logger"
	"github.com/hongminglow/grocery-cli/internal/storage"
	postgres "github.com/hongminglow/grocery-cli/internal/storage/postgres"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("load config: %v", err)
		return 1
	}
	logger.SetDebug(cfg.Debug)
	if err := logger.Init(cfg.LogDir); err != nil {
		log.Printf("init log dir: %v", err)
		return 1
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := postgres.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("%s", app.Describe(storage.Wrap(storage.OpConnect, err), cfg.Debug))
		return 1
	}
	defer store.Close()
	logger.Debug("connected to database")

	a, err := app.New(cfg, store, console.New(os.Stdin, os.Stdout))
	if err != nil {
		logger.Error("init app: %v", err)
		return 1
	}

	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-done:
		if err != nil {
			return 1
		}
		return 0
	case sig := <-sigCh:
		logger.Debug("received %s, closing session", sig)
		cancel()
		return 1
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
}
