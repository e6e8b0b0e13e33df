package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// NewPostgres creates a new PostgreSQL connection pool.
// The initial connect is retried with exponential backoff up to maxRetries times
// so the API survives a database that is still starting next to it.
func NewPostgres(databaseURL string, maxRetries int) (*sqlx.DB, error) {
	var db *sqlx.DB

	connect := func() error {
		conn, err := sqlx.Open("postgres", databaseURL)
		if err != nil {
			return backoff.Permanent(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := conn.PingContext(ctx); err != nil {
			conn.Close()
			return err
		}
		db = conn
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second

	if maxRetries < 0 {
		maxRetries = 0
	}

	err := backoff.RetryNotify(connect, backoff.WithMaxRetries(b, uint64(maxRetries)), func(err error, d time.Duration) {
		log.Warn().Err(err).Dur("backoff", d).Msg("PostgreSQL not ready, retrying")
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	log.Info().Msg("Connected to PostgreSQL")
	return db, nil
}

// ClosePostgres closes the database connection
func ClosePostgres(db *sqlx.DB) {
	if db != nil {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing PostgreSQL connection")
		} else {
			log.Info().Msg("PostgreSQL connection closed")
		}
	}
}
