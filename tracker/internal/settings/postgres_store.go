package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Krimson/exstats/pkg/exstats"
	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS exstats_settings (
		profile    TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresStore хранит настройки в PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore создает хранилище поверх открытого соединения
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// NewPostgresStoreFromDSN создает хранилище из строки подключения
func NewPostgresStoreFromDSN(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Настройки пула соединений
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// EnsureSchema создает таблицу настроек, если ее нет
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}

// Close закрывает соединение с БД
func (r *PostgresStore) Close() error {
	return r.db.Close()
}

func (r *PostgresStore) Load(ctx context.Context, profile string) (*exstats.Options, error) {
	query := `SELECT data FROM exstats_settings WHERE profile = $1`

	var data []byte
	err := r.db.QueryRowContext(ctx, query, profile).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, profile)
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var opts exstats.Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &opts, nil
}

func (r *PostgresStore) Save(ctx context.Context, profile string, opts *exstats.Options) error {
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	query := `
		INSERT INTO exstats_settings (profile, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, profile, data, time.Now()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
