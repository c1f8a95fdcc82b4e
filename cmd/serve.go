// cmd/serve.go

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/invoice-generator/pkg/archive"
	"github.com/invoice-generator/pkg/config"
	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/pkg/logging"
	"github.com/invoice-generator/pkg/render"
	"github.com/invoice-generator/pkg/server"
	"github.com/invoice-generator/pkg/storage"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address"},
			&cli.StringFlag{Name: "output-dir", Usage: "directory generated PDFs are written to"},
			&cli.StringFlag{Name: "layout", Usage: "invoice layout: detailed or inline"},
		},
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, cleanup, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(cfg, deps)
	if err != nil {
		return err
	}
	httpServer := srv.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", cfg.ListenAddr),
			zap.String("output_dir", cfg.OutputDir),
			zap.String("layout", cfg.Layout),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

// buildDeps prepares the output directory, the optional S3 mirror and the
// optional archive. The returned cleanup closes whatever was opened.
func buildDeps(ctx context.Context, cfg *config.Config, log *zap.Logger) (server.Deps, func(), error) {
	cleanup := func() {}

	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return server.Deps{}, cleanup, err
	}

	files := storage.NewFileStore(cfg.OutputDir)
	if err := files.Init(); err != nil {
		return server.Deps{}, cleanup, err
	}
	store := storage.NewMirroredStore(files, log)

	if cfg.S3.Enabled() {
		client, err := storage.NewS3Client(ctx, storage.S3Options{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
		if err != nil {
			return server.Deps{}, cleanup, err
		}
		store.AddMirror(storage.NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix))
		log.Info("s3 mirror enabled", zap.String("bucket", cfg.S3.Bucket))
	}

	var recorder archive.Recorder = archive.NopRecorder{}
	if cfg.DatabaseURL != "" {
		pg, err := archive.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return server.Deps{}, cleanup, err
		}
		cleanup = func() {
			if err := pg.Close(); err != nil {
				log.Warn("failed to close archive", zap.Error(err))
			}
		}
		recorder = pg
		log.Info("archive enabled")
	}

	return server.Deps{
		Normalizer: invoice.NewNormalizer(),
		Renderer:   render.New(renderOpts),
		Store:      store,
		Archive:    recorder,
		Logger:     log,
	}, cleanup, nil
}
