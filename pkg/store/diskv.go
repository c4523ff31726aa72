package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/ftf/pkg/week"
)

// ErrNotFound is returned by Get when no snapshot exists for a week id.
var ErrNotFound = errors.New("store: week not found")

// Order selects the createdAt ordering of ListAll.
type Order string

const (
	Newest Order = "newest"
	Oldest Order = "oldest"
)

// ListOptions narrows ListAll. A zero Limit means no limit; an empty Order
// means Newest.
type ListOptions struct {
	Limit int
	Order Order
}

// Persistence defines the durable store contract for week snapshots. Writes
// are always whole snapshots.
type Persistence interface {
	Get(ctx context.Context, id week.ID) (*week.Week, error)
	Put(ctx context.Context, w *week.Week) (week.ID, error)
	Delete(ctx context.Context, id week.ID) error
	ListAll(ctx context.Context, opts ListOptions) ([]*week.Week, error)
	Exists(ctx context.Context, id week.ID) (bool, error)
	Watch(ctx context.Context) (<-chan Event, error)
	Close() error
}

const weeksDir = "weeks"

// Option configures the Persistence returned by Load.
type Option func(*loadOptions)

type loadOptions struct {
	log *slog.Logger
}

// WithLogger sets the logger used for snapshots that are skipped or watch
// errors that are not returned.
func WithLogger(l *slog.Logger) Option {
	return func(o *loadOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// Load creates a Persistence for the backend named in cfg. A nil cfg reads
// the configuration from disk and environment.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	o := loadOptions{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	switch b := cfg.Backend(); b {
	case "", BackendDiskv:
		return newDiskv(cfg.BasePath(), o.log), nil
	case BackendSQLite:
		return OpenSQLite(cfg.BasePath())
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", b)
	}
}

func newDiskv(basePath string, log *slog.Logger) *persistence {
	if log == nil {
		log = slog.Default()
	}
	return &persistence{log: log, d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
}

func (p *persistence) read(key string) (*week.Week, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	w := &week.Week{}
	if err := json.Unmarshal(val, w); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", key, err)
	}
	w.Normalize()
	return w, nil
}

func (p *persistence) Get(_ context.Context, id week.ID) (*week.Week, error) {
	key := string(id)
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.read(key)
}

func (p *persistence) Put(_ context.Context, w *week.Week) (week.ID, error) {
	if w == nil || w.ID == "" {
		return "", errors.New("store: week id required")
	}
	snapshot := w.Clone()
	snapshot.Normalize()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	if err := p.d.Write(string(w.ID), data); err != nil {
		return "", err
	}
	return w.ID, nil
}

func (p *persistence) Delete(_ context.Context, id week.ID) error {
	if !p.d.Has(string(id)) {
		return nil
	}
	return p.d.Erase(string(id))
}

func (p *persistence) Exists(_ context.Context, id week.ID) (bool, error) {
	return p.d.Has(string(id)), nil
}

func (p *persistence) ListAll(ctx context.Context, opts ListOptions) ([]*week.Week, error) {
	all := make([]*week.Week, 0)
	for key := range p.d.Keys(ctx.Done()) {
		w, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable week", "key", key, "error", err)
			continue
		}
		all = append(all, w)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sortAndLimit(all, opts), nil
}

func (p *persistence) Close() error {
	return nil
}

func sortAndLimit(weeks []*week.Week, opts ListOptions) []*week.Week {
	sort.SliceStable(weeks, func(i, j int) bool {
		left, right := weeks[i], weeks[j]
		if left.CreatedAt.Equal(right.CreatedAt) {
			return left.ID < right.ID
		}
		return left.CreatedAt.Before(right.CreatedAt)
	})
	if opts.Order != Oldest {
		for i, j := 0, len(weeks)-1; i < j; i, j = i+1, j-1 {
			weeks[i], weeks[j] = weeks[j], weeks[i]
		}
	}
	if opts.Limit > 0 && len(weeks) > opts.Limit {
		weeks = weeks[:opts.Limit]
	}
	return weeks
}

// keyToPathTransform shards snapshots by year: weeks/2026/2026-W03.
func keyToPathTransform(key string) *diskv.PathKey {
	year := "misc"
	if len(key) >= 4 {
		year = key[:4]
	}
	return &diskv.PathKey{
		Path:     []string{weeksDir, year},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
