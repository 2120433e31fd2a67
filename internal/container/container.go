package container

import (
	"database/sql"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-user-registration/config"
	"github.com/oksasatya/go-ddd-user-registration/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Optional clients stay nil when their backend is disabled; the router checks.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	sqliteDB    *sql.DB
	redisClient *redis.Client
	esClient    *elasticsearch.Client
	emailQueue  *helpers.RabbitQueue
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return logger
}

func SetPGPool(p *pgxpool.Pool)            { pgPool = p }
func GetPGPool() *pgxpool.Pool             { return pgPool }
func SetSQLite(db *sql.DB)                 { sqliteDB = db }
func GetSQLite() *sql.DB                   { return sqliteDB }
func SetRedis(r *redis.Client)             { redisClient = r }
func GetRedis() *redis.Client              { return redisClient }
func SetES(c *elasticsearch.Client)        { esClient = c }
func GetES() *elasticsearch.Client         { return esClient }
func SetEmailQueue(q *helpers.RabbitQueue) { emailQueue = q }
func GetEmailQueue() *helpers.RabbitQueue  { return emailQueue }

// Reset clears every registered component.
func Reset() {
	cfg, logger, pgPool, sqliteDB, redisClient, esClient, emailQueue = nil, nil, nil, nil, nil, nil, nil
}
