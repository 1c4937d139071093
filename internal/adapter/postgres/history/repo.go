// Package history implements the lookup history store using PostgreSQL.
package history

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

const (
	table = "lookup_history"

	// DefaultRetain is the number of newest records kept after each insert.
	DefaultRetain = 1000
)

var (
	builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	columns = []string{"id", "word", "phonetic", "meaning_count", "looked_up_at"}
)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides lookup history persistence backed by PostgreSQL.
type Repo struct {
	pool   *pgxpool.Pool
	tx     txRunner
	retain int
}

// New creates a history repository. retain <= 0 means DefaultRetain.
func New(pool *pgxpool.Pool, tx txRunner, retain int) *Repo {
	if retain <= 0 {
		retain = DefaultRetain
	}
	return &Repo{pool: pool, tx: tx, retain: retain}
}

// Record stores rec and prunes everything older than the newest retain
// records, in one transaction.
func (r *Repo) Record(ctx context.Context, rec domain.LookupRecord) error {
	insert, insertArgs, err := builder.
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.Word, rec.Phonetic, rec.MeaningCount, rec.LookedUpAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	keep := builder.
		Select("id").
		From(table).
		OrderBy("looked_up_at DESC", "id DESC").
		Limit(uint64(r.retain))

	prune, pruneArgs, err := builder.
		Delete(table).
		Where(sq.Expr("id NOT IN (?)", keep)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build prune: %w", err)
	}

	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.ConnFromCtx(ctx, r.pool)

		if _, err := q.Exec(ctx, insert, insertArgs...); err != nil {
			return postgres.MapError(err, "insert lookup "+rec.Word)
		}
		if _, err := q.Exec(ctx, prune, pruneArgs...); err != nil {
			return postgres.MapError(err, "prune lookup history")
		}
		return nil
	})
}

// ListRecent returns up to limit records, newest first. Returns an empty
// slice (not nil) when the history is empty.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.LookupRecord, error) {
	if limit <= 0 {
		return []domain.LookupRecord{}, nil
	}

	query, args, err := builder.
		Select(columns...).
		From(table).
		OrderBy("looked_up_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := postgres.ConnFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list lookups")
	}

	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, postgres.MapError(err, "scan lookups")
	}
	if records == nil {
		records = []domain.LookupRecord{}
	}
	return records, nil
}

func scanRecord(row pgx.CollectableRow) (domain.LookupRecord, error) {
	var rec domain.LookupRecord
	err := row.Scan(&rec.ID, &rec.Word, &rec.Phonetic, &rec.MeaningCount, &rec.LookedUpAt)
	if err != nil {
		return domain.LookupRecord{}, err
	}
	rec.LookedUpAt = rec.LookedUpAt.UTC()
	return rec, nil
}
