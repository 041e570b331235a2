package database

import (
	"context"
	"time"

	"link1t-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// supavisorTxPort is the Supabase pooler port running in transaction mode
const supavisorTxPort = 6543

// NewPostgresConnection opens a pgx pool and pings it. Pooler targets in
// transaction mode get the simple protocol, since they reject named
// prepared statements.
func NewPostgresConnection(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := poolConfig(connString)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Log.Info("Portfolio database connected", "driver", "postgres", "host", config.ConnConfig.Host, "simple_protocol", usesPooler(config))
	return pool, nil
}

func poolConfig(connString string) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, err
	}

	if usesPooler(config) {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}

	// one statement per request; a small pool covers it
	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 15 * time.Minute
	return config, nil
}

func usesPooler(config *pgxpool.Config) bool {
	return config.ConnConfig.Port == supavisorTxPort
}
