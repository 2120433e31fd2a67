package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-registration/config"
	appuser "github.com/oksasatya/go-ddd-user-registration/internal/application"
	pginfra "github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-user-registration/pkg/helpers"
)

// export writes the user directory ({"id","email"} JSON lines) to GCS.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-export", cfg.Env, cfg.LogLevel)

	object := flag.String("object", "", "object path inside GCS_BUCKET (default exports/users-<utc timestamp>.jsonl)")
	flag.Parse()

	if cfg.GCSBucket == "" {
		logger.Fatal("GCS_BUCKET not configured")
	}
	if *object == "" {
		*object = fmt.Sprintf("exports/users-%s.jsonl", time.Now().UTC().Format("20060102T150405Z"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		logger.WithError(err).Fatal("failed to init GCS client")
	}
	defer func() { _ = gcs.Close() }()

	// cancelling the writer's context aborts the upload, so a failed export leaves no object
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := helpers.NewObjectWriter(wctx, gcs, cfg.GCSBucket, *object, "application/x-ndjson")

	n, err := appuser.ExportUsers(ctx, pginfra.NewUserRepository(pool), w)
	if err != nil {
		cancel()
		_ = w.Close()
		logger.WithError(err).Fatal("export failed")
	}
	if err := w.Close(); err != nil {
		logger.WithError(err).Fatal("finalize upload")
	}
	logger.WithFields(logrus.Fields{"users": n, "uri": helpers.ObjectURI(cfg.GCSBucket, *object)}).Info("export complete")
}
