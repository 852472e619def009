package spacedrep

import (
	"context"
	"fmt"
)

// ProgressRepo persists progress records under a key (player or pool
// scope). A missing key loads as an empty map with no error.
type ProgressRepo interface {
	LoadProgress(ctx context.Context, key string) (map[string]CardRecord, error)
	SaveProgress(ctx context.Context, key string, records map[string]CardRecord) error
}

// LoadStatus describes how a progress load went.
type LoadStatus int

const (
	StatusLoaded LoadStatus = iota
	StatusEmpty
	StatusRecovered
)

func (s LoadStatus) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusEmpty:
		return "empty"
	case StatusRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// LoadResult is the outcome of Load. Progress is never nil.
type LoadResult struct {
	Progress *Progress
	Status   LoadStatus
	Reason   string
	Repaired int
}

// Load reads progress for key. It never fails: an unreadable or corrupt
// store yields empty progress with StatusRecovered and the reason.
func Load(ctx context.Context, repo ProgressRepo, key string) LoadResult {
	records, err := repo.LoadProgress(ctx, key)
	if err != nil {
		return LoadResult{Progress: NewProgress(), Status: StatusRecovered, Reason: err.Error()}
	}
	if len(records) == 0 {
		return LoadResult{Progress: NewProgress(), Status: StatusEmpty}
	}
	p, repaired := FromRecords(records)
	res := LoadResult{Progress: p, Status: StatusLoaded, Repaired: repaired}
	if repaired > 0 {
		res.Reason = fmt.Sprintf("%d field(s) reset to defaults", repaired)
	}
	return res
}

// Save writes every entry of p under key.
func Save(ctx context.Context, repo ProgressRepo, key string, p *Progress) error {
	if err := repo.SaveProgress(ctx, key, p.Records()); err != nil {
		return fmt.Errorf("save progress %q: %w", key, err)
	}
	return nil
}

// MemoryRepo is an in-memory ProgressRepo.
type MemoryRepo struct {
	data map[string]map[string]CardRecord
	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryRepo returns an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]map[string]CardRecord)}
}

func (m *MemoryRepo) LoadProgress(_ context.Context, key string) (map[string]CardRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	src := m.data[key]
	out := make(map[string]CardRecord, len(src))
	for id, r := range src {
		out[id] = r
	}
	return out, nil
}

func (m *MemoryRepo) SaveProgress(_ context.Context, key string, records map[string]CardRecord) error {
	if m.Err != nil {
		return m.Err
	}
	dst := m.data[key]
	if dst == nil {
		dst = make(map[string]CardRecord, len(records))
		m.data[key] = dst
	}
	for id, r := range records {
		dst[id] = r
	}
	return nil
}
