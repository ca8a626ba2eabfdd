package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"keepnotes/cmd/internal/config"
	"keepnotes/cmd/internal/http/handler"
	"keepnotes/cmd/internal/http/middleware"
	"keepnotes/cmd/internal/http/web"
	"keepnotes/cmd/internal/infrastructure/aws/storage"
	"keepnotes/cmd/internal/service"
	"keepnotes/cmd/internal/service/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notes API and browser client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if addr != "" {
			cfg.HTTPAddr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
}

func serve(ctx context.Context, cfg *config.Config) error {
	noteService, closeStore, err := openNoteService(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.S3Bucket != "" {
		startSnapshots(ctx, cfg, noteService)
	}

	e := newEcho(cfg, noteService)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.HTTPAddr)
		errCh <- e.Start(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newEcho(cfg *config.Config, noteService handler.NoteService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLevel)

	middleware.Use(e, cfg.HTTPBodyLimit)
	handler.RegisterRoutes(e, handler.NewNoteDefault(noteService))
	web.Register(e)
	return e
}

func startSnapshots(ctx context.Context, cfg *config.Config, notes *service.DefaultNoteService) {
	bucket, err := storage.NewStorageClient(ctx, cfg.S3Region, cfg.S3Bucket)
	if err != nil {
		log.Errorf("snapshots disabled, failed to init S3 client: %v", err)
		return
	}

	uploader := jobs.NewSnapshotUploader(notes, bucket, cfg.SnapshotInterval)
	go uploader.Start(ctx)
}
