package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"raind/internal/app"
	"raind/internal/config"
	"raind/internal/httpapi"
	"raind/internal/manager"
	"raind/internal/registry"
	"raind/internal/retrieval"
)

type serveOptions struct {
	addr         string
	watch        bool
	autoLoad     bool
	serverURL    string
	corsOrigins  string
	requestLog   string
	maxBodyBytes int64
}

func newServeCmd(root *rootOptions) *cobra.Command {
	o := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Example: "  raind serve --models-dir ~/models --auto-load\n" +
			"  raind serve --server-url http://127.0.0.1:8081 --watch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.resolveConfig(cmd)
			if err != nil {
				return err
			}
			o.apply(cmd, &cfg)
			return runServe(cmd.Context(), cfg, o.requestLog)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.addr, "addr", "", "HTTP listen address (default :8080)")
	f.BoolVar(&o.watch, "watch", false, "Rescan the models directory when it changes")
	f.BoolVar(&o.autoLoad, "auto-load", false, "Load the best discovered model at startup")
	f.StringVar(&o.serverURL, "server-url", "", "OpenAI-compatible completion server for models without an in-process backend")
	f.StringVar(&o.corsOrigins, "cors-origins", "", "Comma-separated CORS origins (enables CORS)")
	f.StringVar(&o.requestLog, "request-log", "error", "Default per-request log level: off|error|info|debug")
	f.Int64Var(&o.maxBodyBytes, "max-body-bytes", 0, "Maximum JSON request body size (default 1 MiB)")
	return cmd
}

// apply overlays explicitly set serve flags onto cfg.
func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("addr") {
		cfg.Addr = o.addr
	}
	if f.Changed("watch") {
		cfg.WatchModels = o.watch
	}
	if f.Changed("auto-load") {
		cfg.AutoLoad = o.autoLoad
	}
	if f.Changed("server-url") {
		cfg.ServerURL = o.serverURL
	}
	if f.Changed("cors-origins") {
		cfg.CORSOrigins = splitCSV(o.corsOrigins)
	}
	if f.Changed("max-body-bytes") {
		cfg.MaxBodyBytes = o.maxBodyBytes
	}
}

// buildApp wires registry, manager and retriever from cfg.
func buildApp(cfg config.Config, log zerolog.Logger, pub manager.EventPublisher) *app.App {
	reg := registry.New(cfg.ModelsDir, registry.WithLogger(log))
	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry: reg,
		Backend: manager.BackendConfig{
			LlamaCtx:       cfg.LlamaCtx,
			LlamaThreads:   cfg.LlamaThreads,
			ServerURL:      cfg.ServerURL,
			ServerAPIKey:   cfg.ServerAPIKey,
			RequestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		MaxConversationLength: cfg.MaxConversationLength,
		Publisher:             pub,
		Logger:                &log,
	})
	return app.New(app.Config{
		Manager:   mgr,
		Retriever: retrieval.New(retrieval.WithLogger(log)),
		Logger:    &log,
	})
}

func runServe(parent context.Context, cfg config.Config, requestLog string) error {
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := buildApp(cfg, log, httpapi.MetricsPublisher{})
	if _, err := a.DiscoverModels(); err != nil {
		return err
	}
	if _, err := a.DiscoverEmbeddingModels(); err != nil {
		log.Warn().Err(err).Msg("embedding discovery failed")
	}
	if r := a.SanityCheck(); len(r.Formats) == 0 {
		log.Warn().Str("error", r.Error).Msg("no backend available: build with -tags=llama or set server_url")
	}
	if cfg.AutoLoad {
		if ok, err := a.LoadBestModel(ctx); err != nil {
			log.Error().Err(err).Msg("auto-load failed")
		} else if !ok {
			log.Warn().Str("models_dir", cfg.ModelsDir).Msg("auto-load: no models discovered")
		}
	}

	if cfg.WatchModels {
		w, err := registry.NewWatcher(a.Registry(), registry.WithRescanHook(func(r registry.RescanResult) {
			if r.Err != nil {
				log.Error().Err(r.Err).Msg("models rescan failed")
				return
			}
			log.Info().Int("models", r.Models).Int("embeddings", r.Embeddings).Msg("models rescanned")
		}))
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Close()
	}

	httpapi.SetLogger(log)
	httpapi.SetBaseContext(ctx)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetGenerateTimeoutSeconds(int64(cfg.RequestTimeoutSeconds))
	httpapi.SetRequestLogLevel(requestLog)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, nil)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(a),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("models_dir", cfg.ModelsDir).Msg("raind listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Graceful shutdown (Ctrl+C / SIGTERM, or the listener failed)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown error")
		}
		return nil
	})
	serveErr := g.Wait()

	if err := a.UnloadCurrentModel(); err != nil {
		log.Error().Err(err).Msg("unload on shutdown")
	}
	log.Info().Msg("raind stopped")
	return serveErr
}
