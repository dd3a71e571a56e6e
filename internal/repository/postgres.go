package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL repository and verifies the
// connection.
func NewPostgresRepository(ctx context.Context, connString string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) ReplaceStories(ctx context.Context, stories []models.Event) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM stories`); err != nil {
		return fmt.Errorf("failed to clear stories: %w", err)
	}

	for _, s := range stories {
		_, err := tx.Exec(ctx, `
			INSERT INTO stories (id, title, timestamp, latitude, longitude, region, category, source, keywords)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, s.ID, s.Title, s.Timestamp, s.Latitude, s.Longitude, s.Region, s.Category, s.Source, s.Keywords)
		if err != nil {
			return fmt.Errorf("failed to insert story %s: %w", s.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) ListStories(ctx context.Context, filter models.StoryFilter) ([]models.Event, error) {
	query := `
		SELECT id, title, timestamp, latitude, longitude, region, category, source, keywords
		FROM stories
		WHERE ($1 = '' OR region = $1)
		  AND ($2 = '' OR category = $2)
		ORDER BY timestamp DESC
	`
	args := []interface{}{filter.Region, filter.Category}
	if filter.Limit > 0 {
		query += " LIMIT $3"
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []models.Event
	for rows.Next() {
		var s models.Event
		if err := rows.Scan(&s.ID, &s.Title, &s.Timestamp, &s.Latitude, &s.Longitude,
			&s.Region, &s.Category, &s.Source, &s.Keywords); err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}

func (r *PostgresRepository) GetStory(ctx context.Context, id string) (*models.Event, error) {
	var s models.Event
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, timestamp, latitude, longitude, region, category, source, keywords
		FROM stories WHERE id = $1
	`, id).Scan(&s.ID, &s.Title, &s.Timestamp, &s.Latitude, &s.Longitude,
		&s.Region, &s.Category, &s.Source, &s.Keywords)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &s, nil
}

func (r *PostgresRepository) SaveSignals(ctx context.Context, signals []models.Signal) error {
	for _, s := range signals {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO signals (id, type, severity, score, description, event_ids, generated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, s.ID, s.Type, s.Severity, s.Score, s.Description, s.EventIDs, s.GeneratedAt)
		if err != nil {
			return fmt.Errorf("failed to insert signal %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *PostgresRepository) ListSignals(ctx context.Context, filter models.SignalFilter) ([]models.Signal, error) {
	query := `
		SELECT id, type, severity, score, description, event_ids, generated_at
		FROM signals
		WHERE ($1 = '' OR severity = $1)
		  AND ($2 = '' OR type = $2)
		ORDER BY generated_at DESC
	`
	args := []interface{}{filter.Severity, filter.Type}
	if filter.Limit > 0 {
		query += " LIMIT $3"
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list signals: %w", err)
	}
	defer rows.Close()

	var signals []models.Signal
	for rows.Next() {
		var s models.Signal
		if err := rows.Scan(&s.ID, &s.Type, &s.Severity, &s.Score,
			&s.Description, &s.EventIDs, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan signal: %w", err)
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

func (r *PostgresRepository) Close() {
	r.pool.Close()
}
