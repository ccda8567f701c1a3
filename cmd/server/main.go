package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xtding233/breeding-backend/internal/breed"
	"github.com/xtding233/breeding-backend/internal/config"
	"github.com/xtding233/breeding-backend/internal/logging"
	"github.com/xtding233/breeding-backend/internal/rpc"
	"github.com/xtding233/breeding-backend/internal/rules"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	level, _ := cfg.Level()
	logging.Init(level, cfg.LogFormat)

	loader := rules.NewLoader(cfg.ConfigDir)
	resolver := rules.NewFileResolver(loader)
	store, err := rules.NewStore(resolver, cfg.Profile, logging.New("rules"))
	if err != nil {
		return fmt.Errorf("loading probabilities: %w", err)
	}
	breeder := breed.NewBreeder(store, breed.DefaultRNG(), logging.New("breed"))

	grpcServer, err := rpc.New(cfg.GRPCAddr, breeder, logging.New("rpc"))
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newAPI(breeder, store, resolver, logging.New("http")).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	watcherLog := logging.New("watcher")
	watcher := rules.NewFileWatcher(loader.Paths().Files(cfg.Profile), cfg.ReloadInterval, func(path string) {
		watcherLog.Info("config changed", "path", path)
		loader.Invalidate()
		_ = store.Reload()
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := watcher.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return grpcServer.Serve(ctx)
	})
	g.Go(func() error {
		slog.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
