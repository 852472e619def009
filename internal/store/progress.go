package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/leitner/internal/spacedrep"
)

var progressColumns = []string{"question_id", "box", "correct_streak", "incorrect_count", "last_seen", "due"}

// ProgressRepo stores card records in the progress table, one row per
// (scope, question). It implements spacedrep.ProgressRepo.
type ProgressRepo struct {
	db *sql.DB
}

var _ spacedrep.ProgressRepo = (*ProgressRepo)(nil)

func (r *ProgressRepo) LoadProgress(ctx context.Context, key string) (map[string]spacedrep.CardRecord, error) {
	query, args := builder().
		Select(progressColumns...).
		From(builder().Table("progress")).
		Where(entsql.EQ("scope", key)).
		OrderBy("question_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]spacedrep.CardRecord)
	for rows.Next() {
		var id string
		var rec spacedrep.CardRecord
		var lastSeen, due sql.NullString
		if err := rows.Scan(&id, &rec.Box, &rec.CorrectStreak, &rec.IncorrectCount, &lastSeen, &due); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.LastSeen = nullToPtr(lastSeen)
		rec.Due = nullToPtr(due)
		out[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

// progressBatch bounds the rows per upsert statement; each row binds seven
// variables and SQLite caps a statement at 32766.
const progressBatch = 500

// SaveProgress upserts every record under key in one transaction. Rows for
// IDs absent from records are kept.
func (r *ProgressRepo) SaveProgress(ctx context.Context, key string, records map[string]spacedrep.CardRecord) error {
	if len(records) == 0 {
		return nil
	}
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin progress tx: %w", err)
	}
	defer tx.Rollback()

	for len(ids) > 0 {
		n := min(progressBatch, len(ids))
		ins := builder().Insert("progress").
			Columns(append([]string{"scope"}, progressColumns...)...)
		for _, id := range ids[:n] {
			rec := records[id]
			ins.Values(key, id, rec.Box, rec.CorrectStreak, rec.IncorrectCount, ptrToNull(rec.LastSeen), ptrToNull(rec.Due))
		}
		query, args := ins.
			OnConflict(
				entsql.ConflictColumns("scope", "question_id"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert progress: %w", err)
		}
		ids = ids[n:]
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit progress: %w", err)
	}
	return nil
}

// ResetProgress deletes every row under key.
func (r *ProgressRepo) ResetProgress(ctx context.Context, key string) (int64, error) {
	query, args := builder().Delete("progress").Where(entsql.EQ("scope", key)).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	return res.RowsAffected()
}

// DeletePoolProgress deletes the progress of every player for poolID.
func (r *ProgressRepo) DeletePoolProgress(ctx context.Context, poolID string) (int64, error) {
	query, args := builder().Delete("progress").
		Where(entsql.HasSuffix("scope", "/"+poolID)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete pool progress: %w", err)
	}
	return res.RowsAffected()
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrToNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
