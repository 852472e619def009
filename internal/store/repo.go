package store

import "time"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int    // max results (0 = unlimited)
	Player string // filter by player when set
	PoolID string // filter by pool when set
}

// AnswerEventData captures one accepted answer.
type AnswerEventData struct {
	SessionID  string
	Player     string
	PoolID     string
	QuestionID string
	Correct    bool
	NewBox     int
	Timestamp  time.Time
}

// SessionEventData captures a finished session.
type SessionEventData struct {
	SessionID       string
	Mode            string
	PoolID          string
	PoolSize        int
	Chapters        string
	Tags            string
	Player          string
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
	Timestamp       time.Time
}

// SessionSummaryRecord is a session log row as read back.
type SessionSummaryRecord struct {
	Sequence int64
	SessionEventData
}

// Pool is a registered question bank.
type Pool struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	OrigName      string    `json:"orig_name"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}
