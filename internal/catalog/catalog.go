// Package catalog resolves pool IDs to question lists: the built-in pool
// plus every bank registered in the store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/leitner/internal/question"
	"github.com/abhisek/leitner/internal/store"
)

// ErrBuiltinPool is returned when trying to rename or remove the built-in pool.
var ErrBuiltinPool = errors.New("the built-in pool cannot be changed")

// BuiltinName is the display name of the built-in pool.
const BuiltinName = "Built-in pool"

// Registry is the pool table. Implemented by *store.PoolRepo.
type Registry interface {
	Create(ctx context.Context, p *store.Pool) error
	Get(ctx context.Context, id string) (*store.Pool, error)
	List(ctx context.Context) ([]store.Pool, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// ProgressPurger removes every player's progress for a pool.
type ProgressPurger interface {
	DeletePoolProgress(ctx context.Context, poolID string) (int64, error)
}

// Catalog is the pool registry plus the built-in pool.
type Catalog struct {
	registry Registry
	purger   ProgressPurger
	logger   *slog.Logger
}

// New creates a Catalog. purger may be nil when progress lives elsewhere.
func New(registry Registry, purger ProgressPurger, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{registry: registry, purger: purger, logger: logger}
}

// Builtin returns the registry entry describing the built-in pool.
func Builtin() store.Pool {
	return store.Pool{
		ID:            question.BuiltinPoolID,
		Name:          BuiltinName,
		OrigName:      BuiltinName,
		QuestionCount: len(question.Builtin()),
	}
}

// List returns the built-in pool followed by every registered pool.
func (c *Catalog) List(ctx context.Context) ([]store.Pool, error) {
	pools, err := c.registry.List(ctx)
	if err != nil {
		return nil, err
	}
	return append([]store.Pool{Builtin()}, pools...), nil
}

// Get returns the metadata of a pool.
func (c *Catalog) Get(ctx context.Context, id string) (store.Pool, error) {
	if id == "" || id == question.BuiltinPoolID {
		return Builtin(), nil
	}
	p, err := c.registry.Get(ctx, id)
	if err != nil {
		return store.Pool{}, err
	}
	return *p, nil
}

// Load returns the questions of a pool. A registered bank that can no
// longer be read falls back to the built-in pool with a warning.
func (c *Catalog) Load(ctx context.Context, id string) (store.Pool, []question.Question, error) {
	meta, err := c.Get(ctx, id)
	if err != nil {
		return store.Pool{}, nil, err
	}
	if meta.ID == question.BuiltinPoolID {
		return meta, question.Builtin(), nil
	}
	return meta, question.LoadOrBuiltin(meta.Path, c.logger), nil
}

// FromPath loads an unregistered bank. If path belongs to a registered
// pool that pool is returned; otherwise the pool id is derived from the
// absolute path so progress for the same file is found again next time.
func (c *Catalog) FromPath(ctx context.Context, path string) (store.Pool, []question.Question, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return store.Pool{}, nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	pools, err := c.registry.List(ctx)
	if err != nil {
		return store.Pool{}, nil, err
	}
	for _, p := range pools {
		if p.Path == abs {
			return p, question.LoadOrBuiltin(abs, c.logger), nil
		}
	}

	qs := question.LoadOrBuiltin(abs, c.logger)
	orig := filepath.Base(abs)
	return store.Pool{
		ID:            uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String(),
		Name:          strings.TrimSuffix(orig, filepath.Ext(orig)),
		Path:          abs,
		OrigName:      orig,
		QuestionCount: len(qs),
	}, qs, nil
}

// Add validates the bank at path and registers it. An empty name uses
// the file name.
func (c *Catalog) Add(ctx context.Context, path, name string) (store.Pool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return store.Pool{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	qs, err := question.LoadFile(abs)
	if err != nil {
		return store.Pool{}, err
	}
	if len(qs) == 0 {
		return store.Pool{}, fmt.Errorf("%s: %w", path, question.ErrInvalidQuestion)
	}
	orig := filepath.Base(abs)
	if strings.TrimSpace(name) == "" {
		name = strings.TrimSuffix(orig, filepath.Ext(orig))
	}
	p := store.Pool{Name: strings.TrimSpace(name), Path: abs, OrigName: orig, QuestionCount: len(qs)}
	if err := c.registry.Create(ctx, &p); err != nil {
		return store.Pool{}, err
	}
	c.logger.Info("pool added", "id", p.ID, "name", p.Name, "questions", p.QuestionCount)
	return p, nil
}

// Rename changes a pool's display name.
func (c *Catalog) Rename(ctx context.Context, id, name string) error {
	if id == question.BuiltinPoolID {
		return ErrBuiltinPool
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("rename pool: empty name")
	}
	return c.registry.Rename(ctx, id, name)
}

// Remove unregisters a pool and deletes its progress for every player.
// The bank file itself is left in place.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	if id == question.BuiltinPoolID {
		return ErrBuiltinPool
	}
	if err := c.registry.Delete(ctx, id); err != nil {
		return err
	}
	if c.purger != nil {
		n, err := c.purger.DeletePoolProgress(ctx, id)
		if err != nil {
			return fmt.Errorf("remove pool progress: %w", err)
		}
		c.logger.Info("pool removed", "id", id, "progress_rows", n)
	}
	return nil
}
