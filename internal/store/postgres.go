package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

// PostgresStore records run history in Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock prevents concurrent migrations when two invocations
	// share a database.
	const lockID = 728493650

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		// Another invocation is migrating; wait briefly and skip
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id UUID PRIMARY KEY,
			root TEXT,
			args TEXT[],
			model TEXT,
			started_at TIMESTAMPTZ,
			finished_at TIMESTAMPTZ,
			total INT,
			summarized INT,
			skipped INT,
			failed INT
		);`,
		`CREATE TABLE IF NOT EXISTS file_summaries (
			id UUID PRIMARY KEY,
			run_id UUID REFERENCES runs(id) ON DELETE CASCADE,
			path TEXT,
			status TEXT,
			summary TEXT,
			error TEXT,
			created_at TIMESTAMPTZ DEFAULT now()
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, root, args, model, started_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Root, pq.Array(run.Args), run.Model, run.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveFileSummary(ctx context.Context, runID uuid.UUID, fs FileSummary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO file_summaries (id, run_id, path, status, summary, error) VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), runID, fs.Path, fs.Status, fs.Summary, fs.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save file summary: %w", err)
	}
	return nil
}

func (s *PostgresStore) FinishRun(ctx context.Context, runID uuid.UUID, stats RunStats) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = now(), total = $2, summarized = $3, skipped = $4, failed = $5 WHERE id = $1`,
		runID, stats.Total, stats.Summarized, stats.Skipped, stats.Failed,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
