package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/leitner/internal/gamestate"
)

// GameRepo persists gamification state. It implements gamestate.Repo.
type GameRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	mu  *sync.Mutex
}

type queryExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ gamestate.Repo = (*GameRepo)(nil)

// LoadGameState returns the stored state for player, or a fresh one.
// History is not loaded; use History for that.
func (r *GameRepo) LoadGameState(ctx context.Context, player string) (*gamestate.State, error) {
	return loadGameState(ctx, r.db, player)
}

func loadGameState(ctx context.Context, q queryExecer, player string) (*gamestate.State, error) {
	query, args := builder().
		Select("points", "rank_name", "answer_streak", "daily_streak", "last_active").
		From(builder().Table("game_states")).
		Where(entsql.EQ("player", player)).
		Query()

	st := gamestate.NewState(player)
	var rank string
	var lastActive sql.NullString
	err := q.QueryRowContext(ctx, query, args...).
		Scan(&st.Points, &rank, &st.AnswerStreak, &st.DailyStreak, &lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query game state: %w", err)
	}
	// Rank is re-derived so a stale stored rank cannot survive a threshold change.
	st.Rank = gamestate.RankFor(st.Points)
	if lastActive.Valid {
		if t, err := time.Parse(time.RFC3339, lastActive.String); err == nil {
			st.LastActive = t
		}
	}
	return st, nil
}

func (r *GameRepo) SaveGameState(ctx context.Context, st *gamestate.State) error {
	return saveGameState(ctx, r.db, st)
}

func saveGameState(ctx context.Context, q queryExecer, st *gamestate.State) error {
	var lastActive sql.NullString
	if !st.LastActive.IsZero() {
		lastActive = sql.NullString{String: st.LastActive.UTC().Format(time.RFC3339), Valid: true}
	}
	query, args := builder().Insert("game_states").
		Columns("player", "points", "rank_name", "answer_streak", "daily_streak", "last_active").
		Values(st.Player, st.Points, string(st.Rank), st.AnswerStreak, st.DailyStreak, lastActive).
		OnConflict(
			entsql.ConflictColumns("player"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	return nil
}

func (r *GameRepo) AppendHistory(ctx context.Context, player string, entry gamestate.HistoryEntry) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	return insertHistory(ctx, r.db, seq, player, entry)
}

// UpdateGameState loads the stored state for player, applies fn and saves
// the result together with the history entry fn returns. Concurrent
// updates through the same Store are serialized, so no change is lost.
func (r *GameRepo) UpdateGameState(ctx context.Context, player string, fn func(*gamestate.State) gamestate.HistoryEntry) (*gamestate.State, gamestate.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return nil, gamestate.HistoryEntry{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, gamestate.HistoryEntry{}, fmt.Errorf("begin game tx: %w", err)
	}
	defer tx.Rollback()

	st, err := loadGameState(ctx, tx, player)
	if err != nil {
		return nil, gamestate.HistoryEntry{}, err
	}
	entry := fn(st)
	if err := saveGameState(ctx, tx, st); err != nil {
		return nil, gamestate.HistoryEntry{}, err
	}
	if err := insertHistory(ctx, tx, seq, player, entry); err != nil {
		return nil, gamestate.HistoryEntry{}, err
	}
	if err := tx.Commit(); err != nil {
		return nil, gamestate.HistoryEntry{}, fmt.Errorf("commit game state: %w", err)
	}
	return st, entry, nil
}

func insertHistory(ctx context.Context, q queryExecer, seq int64, player string, entry gamestate.HistoryEntry) error {
	query, args := builder().Insert("points_history").
		Columns("sequence", "player", "ts", "delta", "reason").
		Values(seq, player, entry.Timestamp.UTC().Format(time.RFC3339), entry.Delta, entry.Reason).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append points history: %w", err)
	}
	return nil
}

// History returns the most recent points changes for player, newest first.
func (r *GameRepo) History(ctx context.Context, player string, limit int) ([]gamestate.HistoryEntry, error) {
	sel := builder().
		Select("ts", "delta", "reason").
		From(builder().Table("points_history")).
		Where(entsql.EQ("player", player)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query points history: %w", err)
	}
	defer rows.Close()

	var out []gamestate.HistoryEntry
	for rows.Next() {
		var ts string
		var e gamestate.HistoryEntry
		if err := rows.Scan(&ts, &e.Delta, &e.Reason); err != nil {
			return nil, fmt.Errorf("scan points history: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *GameRepo) ListGameStates(ctx context.Context) ([]gamestate.Entry, error) {
	query, args := builder().
		Select("player", "points").
		From(builder().Table("game_states")).
		OrderBy("player").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query game states: %w", err)
	}
	defer rows.Close()

	var out []gamestate.Entry
	for rows.Next() {
		var e gamestate.Entry
		if err := rows.Scan(&e.Player, &e.Points); err != nil {
			return nil, fmt.Errorf("scan game state: %w", err)
		}
		e.Rank = gamestate.RankFor(e.Points)
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteGameState removes the player's state and points history.
func (r *GameRepo) DeleteGameState(ctx context.Context, player string) error {
	for _, table := range []string{"game_states", "points_history"} {
		query, args := builder().Delete(table).Where(entsql.EQ("player", player)).Query()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}
