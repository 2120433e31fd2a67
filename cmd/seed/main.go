package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-registration/config"
	appuser "github.com/oksasatya/go-ddd-user-registration/internal/application"
	"github.com/oksasatya/go-ddd-user-registration/internal/container"
	"github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	vo "github.com/oksasatya/go-ddd-user-registration/internal/domain/valueobject"
	pginfra "github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/postgres"
	sqliteinfra "github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-ddd-user-registration/internal/router"
	"github.com/oksasatya/go-ddd-user-registration/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	email := flag.String("email", getenv("SEED_EMAIL", "demo@example.com"), "email of the demo user")
	password := flag.String("password", getenv("SEED_PASSWORD", "DemoPass123_"), "plaintext password of the demo user")
	flag.Parse()

	if cfg.StorageBackend == config.StorageMemory {
		logger.Warnf("STORAGE_BACKEND=%s does not persist across processes; the seed is only a dry run", cfg.StorageBackend)
	}

	ctx := context.Background()
	container.SetConfig(cfg)
	container.SetLogger(logger)

	if cfg.StorageBackend == config.StoragePostgres {
		pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
		if err != nil {
			logger.WithError(err).Fatal("failed to connect to postgres")
		}
		defer pool.Close()
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.WithError(err).Fatal("migration failed")
		}
		container.SetPGPool(pool)
	}
	if cfg.StorageBackend == config.StorageSQLite {
		db, err := sqliteinfra.Open(ctx, cfg.SQLitePath)
		if err != nil {
			logger.WithError(err).Fatal("failed to open sqlite database")
		}
		defer func() { _ = db.Close() }()
		container.SetSQLite(db)
	}

	users, err := router.BuildUserRepository(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to build user repository")
	}
	// no welcome mail or indexing for seeded users
	svc := appuser.NewRegistrationService(users, nil, nil, logger, cfg)

	if err := seedUser(ctx, svc, users, *email, *password, logger); err != nil {
		logger.WithError(err).Fatal("failed to seed user")
	}
}

// seedUser registers the demo user. Reseeding an existing email is not an
// error; it reports whether the stored digest still matches the password.
func seedUser(ctx context.Context, svc *appuser.RegistrationService, users repository.UserRepository, email, password string, logger *logrus.Logger) error {
	out, err := svc.Register(ctx, appuser.RegisterInput{Email: email, Password: password})
	if errors.Is(err, appuser.ErrEmailAlreadyRegistered) {
		return reportExisting(ctx, users, email, password, logger)
	}
	if err != nil {
		return err
	}
	helpers.LogInfo(logger, "seed complete", logrus.Fields{"user_id": out.ID, "email": out.Email})
	return nil
}

func reportExisting(ctx context.Context, users repository.UserRepository, email, password string, logger *logrus.Logger) error {
	addr, err := vo.NewEmail(email)
	if err != nil {
		return err
	}
	u, err := users.FindByEmail(ctx, addr)
	if err != nil {
		return fmt.Errorf("load existing demo user: %w", err)
	}
	if u == nil {
		return fmt.Errorf("demo user %s vanished after a duplicate check", email)
	}
	matches := u.Password().Matches(password)
	fields := logrus.Fields{"user_id": u.ID().String(), "email": email, "password_matches": matches}
	if !matches {
		logger.WithFields(fields).Warn("demo user already registered with a different password")
		return nil
	}
	helpers.LogInfo(logger, "demo user already registered", fields)
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
