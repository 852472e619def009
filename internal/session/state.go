package session

// Phase represents where a Runner is in its session.
type Phase int

const (
	PhaseActive    Phase = iota // Serving the initial set
	PhaseReviewing              // Serving a pass over earlier misses
	PhaseDone                   // Nothing left to serve
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseReviewing:
		return "reviewing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
