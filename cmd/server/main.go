package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/tubesum/internal/backend"
	"github.com/nguyentantai21042004/tubesum/internal/config"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
	"github.com/nguyentantai21042004/tubesum/internal/transcript"
	"github.com/nguyentantai21042004/tubesum/internal/watcher"
	"github.com/nguyentantai21042004/tubesum/internal/web"
	"github.com/nguyentantai21042004/tubesum/pkg/executor"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config file")
	watchConfig := flag.Bool("watch", true, "Reload the pipeline when the config file changes")
	flag.Parse()

	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	gin.SetMode(cfg.Server.Mode)

	exec := executor.New()
	pipe, err := buildPipeline(ctx, cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to build pipeline: %v", err)
		os.Exit(1)
	}

	server := web.New(pipe, log, web.Options{AllowedOrigins: cfg.Server.AllowedOrigins})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if *watchConfig {
		startConfigWatcher(ctx, *configPath, server, exec, log)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info(ctx, "Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Forced shutdown: %v", err)
	}
	log.Info(ctx, "Server stopped")
}

// buildPipeline wires the backend, transcript source and summarizer selected by cfg.
// A missing API key is not fatal: summaries fall back to the transcript's opening words.
func buildPipeline(ctx context.Context, cfg *config.Config, exec executor.Executor, log logger.Logger) (pipeline.Pipeline, error) {
	gen, err := backend.New(ctx, cfg.Backend)
	switch {
	case errors.Is(err, backend.ErrMissingAPIKey):
		log.Warn(ctx, "No API key configured; summaries will be the first %d words of the transcript", cfg.Summarizer.FallbackWords)
		gen = nil
	case err != nil:
		return nil, fmt.Errorf("backend: %w", err)
	default:
		log.Info(ctx, "Backend: %s (model %s)", cfg.Backend.Provider, cfg.Backend.Model)
	}

	if cfg.Transcript.Source == config.SourceYtDlp {
		if path, err := exec.LookPath(cfg.Transcript.YtDlpPath); err != nil {
			log.Warn(ctx, "%s not found on PATH; transcripts will be unavailable: %v", cfg.Transcript.YtDlpPath, err)
		} else {
			log.Info(ctx, "Transcript source: yt-dlp (%s)", path)
		}
	} else {
		log.Info(ctx, "Transcript source: youtube, languages %v", cfg.Transcript.Languages)
	}

	sum := summarizer.New(gen, summarizer.Options{
		Model:         cfg.Backend.Model,
		MaxChunkChars: cfg.Summarizer.MaxChunkChars,
		FallbackWords: cfg.Summarizer.FallbackWords,
		CallTimeout:   cfg.Backend.Timeout,
		MaxConcurrent: cfg.Performance.MaxConcurrent,
	}, log)

	fetcher := transcript.New(cfg.Transcript, exec, log)
	return pipeline.New(fetcher, sum, cfg.Transcript.Languages, log), nil
}

// startConfigWatcher rebuilds the pipeline whenever the config file changes. Listen
// address and logging settings still need a restart.
func startConfigWatcher(ctx context.Context, path string, server web.Server, exec executor.Executor, log logger.Logger) {
	w, err := watcher.New(path, func(ctx context.Context, filePath string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		cfg, err := config.Load(filePath)
		if err != nil {
			return err
		}
		pipe, err := buildPipeline(ctx, cfg, exec, log)
		if err != nil {
			return err
		}
		server.SetPipeline(pipe)
		log.Info(ctx, "Pipeline reloaded from %s", filePath)
		return nil
	}, log, 0)
	if err != nil {
		log.Warn(ctx, "Config hot reload disabled: %v", err)
		return
	}

	go func() {
		defer w.Stop()
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error(ctx, "Config watcher error: %v", err)
		}
	}()
}
