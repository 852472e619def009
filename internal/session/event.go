package session

import "time"

// AnswerEvent is emitted once per accepted answer. It is informational:
// sinks receive a copy and cannot affect the card transition.
type AnswerEvent struct {
	QuestionID string
	Correct    bool
	NewBox     int
	Timestamp  time.Time
}

// EventSink consumes answer events. Implementations handle their own
// failures; a sink must not block the session for long.
type EventSink interface {
	OnAnswer(AnswerEvent)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(AnswerEvent)

func (f SinkFunc) OnAnswer(ev AnswerEvent) { f(ev) }

// MultiSink fans an event out to every sink in order.
type MultiSink []EventSink

func (m MultiSink) OnAnswer(ev AnswerEvent) {
	for _, s := range m {
		if s != nil {
			s.OnAnswer(ev)
		}
	}
}

// Recorder is an EventSink that keeps every event in memory.
type Recorder struct {
	Events []AnswerEvent
}

func (r *Recorder) OnAnswer(ev AnswerEvent) {
	r.Events = append(r.Events, ev)
}
