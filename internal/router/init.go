package router

import (
	"fmt"

	"github.com/oksasatya/go-ddd-user-registration/config"
	appuser "github.com/oksasatya/go-ddd-user-registration/internal/application"
	"github.com/oksasatya/go-ddd-user-registration/internal/container"
	repouser "github.com/oksasatya/go-ddd-user-registration/internal/domain/repository"
	cacheinfra "github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/cache"
	meminfra "github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/search"
	sqliteinfra "github.com/oksasatya/go-ddd-user-registration/internal/infrastructure/sqlite"
	handlers "github.com/oksasatya/go-ddd-user-registration/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-registration/internal/router/modules"
)

type RegistrationModuleDeps struct {
	Repo    repouser.UserRepository
	Service *appuser.RegistrationService
	Handler *handlers.RegistrationHandler
}

// BuildUserRepository picks the backend named by STORAGE_BACKEND and wraps it
// in the Redis read-through cache when enabled.
func BuildUserRepository(cfg *config.Config) (repouser.UserRepository, error) {
	var users repouser.UserRepository
	switch cfg.StorageBackend {
	case config.StorageMemory, "":
		users = meminfra.NewUserRepository()
	case config.StoragePostgres:
		pool := container.GetPGPool()
		if pool == nil {
			return nil, fmt.Errorf("storage backend %q: no database pool", cfg.StorageBackend)
		}
		users = pginfra.NewUserRepository(pool)
	case config.StorageSQLite:
		db := container.GetSQLite()
		if db == nil {
			return nil, fmt.Errorf("storage backend %q: no database", cfg.StorageBackend)
		}
		users = sqliteinfra.NewUserRepository(db)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if rdb := container.GetRedis(); cfg.CacheEnabled && rdb != nil {
		users = cacheinfra.NewUserRepository(users, rdb, cfg.UserCacheTTL, container.GetLogger())
	}
	return users, nil
}

func buildRegistrationDeps() (RegistrationModuleDeps, error) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	repo, err := BuildUserRepository(cfg)
	if err != nil {
		return RegistrationModuleDeps{}, err
	}

	// nil pointers must not leak into the interfaces
	var pub appuser.JobPublisher
	if q := container.GetEmailQueue(); q != nil {
		pub = q
	}
	var idx appuser.UserIndexer
	if es := container.GetES(); es != nil {
		idx = search.NewUserIndexer(es, cfg.ESUsersIndex)
	}

	service := appuser.NewRegistrationService(repo, pub, idx, logger, cfg)
	handler := handlers.NewRegistrationHandler(service, logger)

	return RegistrationModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}, nil
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) error {
	deps, err := buildRegistrationDeps()
	if err != nil {
		return err
	}
	r.Add(modules.NewRegistrationModule(deps.Handler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return nil
}
