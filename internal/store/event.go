package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/leitner/internal/session"
)

// EventRepo appends and queries the answer and session logs.
type EventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *EventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := builder().Insert("answer_events").
		Columns("sequence", "session_id", "player", "pool_id", "question_id", "correct", "new_box", "ts").
		Values(seqNum, data.SessionID, data.Player, data.PoolID, data.QuestionID, boolToInt(data.Correct), data.NewBox, formatTime(data.Timestamp)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *EventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	query, args := builder().Insert("session_events").
		Columns("sequence", "session_id", "mode", "pool_id", "pool_size", "chapters", "tags",
			"player", "questions_served", "correct_answers", "duration_secs", "ts").
		Values(seqNum, data.SessionID, data.Mode, data.PoolID, data.PoolSize, data.Chapters, data.Tags,
			data.Player, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs, formatTime(data.Timestamp)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// QuerySessionSummaries returns logged sessions, newest first.
func (r *EventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().
		Select("sequence", "session_id", "mode", "pool_id", "pool_size", "chapters", "tags",
			"player", "questions_served", "correct_answers", "duration_secs", "ts").
		From(builder().Table("session_events")).
		OrderBy(entsql.Desc("sequence"))
	var preds []*entsql.Predicate
	if opts.Player != "" {
		preds = append(preds, entsql.EQ("player", opts.Player))
	}
	if opts.PoolID != "" {
		preds = append(preds, entsql.EQ("pool_id", opts.PoolID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		var ts string
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &rec.Mode, &rec.PoolID, &rec.PoolSize,
			&rec.Chapters, &rec.Tags, &rec.Player, &rec.QuestionsServed, &rec.CorrectAnswers,
			&rec.DurationSecs, &ts); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp, _ = time.Parse(time.RFC3339, ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountAnswers returns how many answer events were logged for a session.
func (r *EventRepo) CountAnswers(ctx context.Context, sessionID string) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(builder().Table("answer_events")).
		Where(entsql.EQ("session_id", sessionID)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	return n, nil
}

// AnswerSink returns a session.EventSink that logs every answer under the
// given session. Write failures are logged, not returned.
func (r *EventRepo) AnswerSink(ctx context.Context, sessionID, player, poolID string, logger *slog.Logger) session.EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return session.SinkFunc(func(ev session.AnswerEvent) {
		err := r.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID:  sessionID,
			Player:     player,
			PoolID:     poolID,
			QuestionID: ev.QuestionID,
			Correct:    ev.Correct,
			NewBox:     ev.NewBox,
			Timestamp:  ev.Timestamp,
		})
		if err != nil {
			logger.Warn("answer event not recorded", "session", sessionID, "question", ev.QuestionID, "error", err)
		}
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
