// Package store archives prediction results in Postgres. It is optional:
// the pipeline itself never persists anything, this is for the demo
// server's history endpoint.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

// New creates a connection pool and verifies it with a ping.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the predictions table if it doesn't exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS predictions (
			id BIGSERIAL PRIMARY KEY,
			match_id TEXT NOT NULL,
			game_name TEXT NOT NULL,
			champion_name TEXT NOT NULL,
			rank_index INT NOT NULL,
			predicted_rank TEXT NOT NULL,
			kda DOUBLE PRECISION NOT NULL,
			win BOOLEAN NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// PredictionRecord is one archived prediction.
type PredictionRecord struct {
	MatchID       string    `json:"matchId"`
	GameName      string    `json:"gameName"`
	ChampionName  string    `json:"championName"`
	RankIndex     int       `json:"rankIndex"`
	PredictedRank string    `json:"predictedRank"`
	KDA           float64   `json:"kda"`
	Win           bool      `json:"win"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SavePrediction inserts one prediction row.
func (s *Store) SavePrediction(ctx context.Context, r *PredictionRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO predictions (match_id, game_name, champion_name, rank_index, predicted_rank, kda, win)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.MatchID, r.GameName, r.ChampionName, r.RankIndex, r.PredictedRank, r.KDA, r.Win)
	return err
}

// RecentPredictions returns the most recent archived predictions.
func (s *Store) RecentPredictions(ctx context.Context, limit int) ([]PredictionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT match_id, game_name, champion_name, rank_index, predicted_rank, kda, win, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PredictionRecord
	for rows.Next() {
		var r PredictionRecord
		if err := rows.Scan(&r.MatchID, &r.GameName, &r.ChampionName, &r.RankIndex,
			&r.PredictedRank, &r.KDA, &r.Win, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
