package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gigaverse-labs/advisor/internal/advisor"
)

// Bounds on how many decisions Recent returns.
const (
	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// DecisionRepository stores advisor decisions in the decisions table.
type DecisionRepository struct {
	db *pgxpool.Pool
}

// NewDecisionRepository creates a DecisionRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewDecisionRepository(db *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{db: db}
}

// Record inserts rec. It implements advisor.Recorder.
//
// Precondition: rec.ID must not be uuid.Nil; rec.Kind must be move or loot.
// Postcondition: the row is committed or a non-nil error is returned.
func (r *DecisionRepository) Record(ctx context.Context, rec advisor.Record) error {
	if rec.ID == uuid.Nil {
		return fmt.Errorf("recording decision: id must be set")
	}
	snapshot, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	var options []byte
	if len(rec.Options) > 0 {
		if options, err = json.Marshal(rec.Options); err != nil {
			return fmt.Errorf("encoding loot options: %w", err)
		}
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO decisions (id, kind, choice, expected_value, explanation, snapshot, options, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID.String(), string(rec.Kind), rec.Choice, rec.Score, rec.Explanation, snapshot, options, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting decision %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to limit decisions, newest first.
//
// Postcondition: a non-positive limit is treated as DefaultRecentLimit; limits
// above MaxRecentLimit are clamped to it.
func (r *DecisionRepository) Recent(ctx context.Context, limit int) ([]advisor.Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	limit = min(limit, MaxRecentLimit)
	rows, err := r.db.Query(ctx,
		`SELECT id::text, kind, choice, expected_value, explanation, snapshot, options, created_at
		 FROM decisions
		 ORDER BY created_at DESC, id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var out []advisor.Record
	for rows.Next() {
		var (
			rec      advisor.Record
			id, kind string
			snapshot []byte
			options  []byte
		)
		if err := rows.Scan(&id, &kind, &rec.Choice, &rec.Score, &rec.Explanation, &snapshot, &options, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing decision id %q: %w", id, err)
		}
		rec.Kind = advisor.Kind(kind)
		if err := json.Unmarshal(snapshot, &rec.Snapshot); err != nil {
			return nil, fmt.Errorf("decoding snapshot for %s: %w", id, err)
		}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &rec.Options); err != nil {
				return nil, fmt.Errorf("decoding loot options for %s: %w", id, err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decisions: %w", err)
	}
	return out, nil
}
