package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var poolColumns = []string{"id", "name", "path", "orig_name", "question_count", "created_at"}

// PoolRepo is the registry of uploaded question banks.
type PoolRepo struct {
	db *sql.DB
}

// Create registers a pool. An empty ID is replaced by a new UUID.
func (r *PoolRepo) Create(ctx context.Context, p *Pool) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	query, args := builder().Insert("pools").
		Columns(poolColumns...).
		Values(p.ID, p.Name, p.Path, p.OrigName, p.QuestionCount, formatTime(p.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create pool: %w", err)
	}
	return nil
}

// Get returns the pool with id, or ErrNotFound.
func (r *PoolRepo) Get(ctx context.Context, id string) (*Pool, error) {
	query, args := builder().
		Select(poolColumns...).
		From(builder().Table("pools")).
		Where(entsql.EQ("id", id)).
		Query()
	p, err := scanPool(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pool %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query pool: %w", err)
	}
	return p, nil
}

// List returns every registered pool, oldest first.
func (r *PoolRepo) List(ctx context.Context) ([]Pool, error) {
	query, args := builder().
		Select(poolColumns...).
		From(builder().Table("pools")).
		OrderBy("created_at", "name").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pools: %w", err)
	}
	defer rows.Close()

	var out []Pool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pool: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Rename changes the display name of a pool.
func (r *PoolRepo) Rename(ctx context.Context, id, name string) error {
	query, args := builder().Update("pools").
		Set("name", name).
		Where(entsql.EQ("id", id)).
		Query()
	return r.execOne(ctx, "rename pool", id, query, args)
}

// Delete removes a pool from the registry. Progress rows are removed
// separately with ProgressRepo.DeletePoolProgress.
func (r *PoolRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Delete("pools").Where(entsql.EQ("id", id)).Query()
	return r.execOne(ctx, "delete pool", id, query, args)
}

func (r *PoolRepo) execOne(ctx context.Context, op, id, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("pool %q: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPool(row rowScanner) (*Pool, error) {
	var p Pool
	var created string
	if err := row.Scan(&p.ID, &p.Name, &p.Path, &p.OrigName, &p.QuestionCount, &created); err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &p, nil
}
