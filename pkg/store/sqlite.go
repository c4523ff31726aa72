package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"tableflip.dev/ftf/pkg/week"
)

const (
	sqliteFile = "ftf.db"

	// Fixed width so timestamps sort lexically.
	layoutStamp = "2006-01-02T15:04:05.000000000Z"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS weeks (
	id          TEXT PRIMARY KEY,
	start_date  TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	body        BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_weeks_created_at ON weeks(created_at);
`

// SQLitePollInterval is how often Watch checks the weeks table for changes.
var SQLitePollInterval = time.Second

type sqlitePersistence struct {
	conn *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) a sqlite database under dir. When dir
// ends in ".db" it is used as the database file itself.
func OpenSQLite(dir string) (Persistence, error) {
	path := dir
	if filepath.Ext(dir) != ".db" {
		path = filepath.Join(dir, sqliteFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", path))
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &sqlitePersistence{conn: conn, path: path}, nil
}

func (s *sqlitePersistence) Get(ctx context.Context, id week.ID) (*week.Week, error) {
	query, args, err := sq.Select("body").From("weeks").Where(sq.Eq{"id": string(id)}).ToSql()
	if err != nil {
		return nil, err
	}
	var body []byte
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return decodeWeek(body)
}

func (s *sqlitePersistence) Put(ctx context.Context, w *week.Week) (week.ID, error) {
	if w == nil || w.ID == "" {
		return "", errors.New("store: week id required")
	}
	snapshot := w.Clone()
	snapshot.Normalize()
	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	query, args, err := sq.Insert("weeks").
		Columns("id", "start_date", "created_at", "updated_at", "body").
		Values(
			string(w.ID),
			w.StartDate.UTC().Format(layoutStamp),
			w.CreatedAt.UTC().Format(layoutStamp),
			w.UpdatedAt.UTC().Format(layoutStamp),
			body,
		).
		Suffix("ON CONFLICT(id) DO UPDATE SET start_date = excluded.start_date, updated_at = excluded.updated_at, body = excluded.body").
		ToSql()
	if err != nil {
		return "", err
	}
	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("store: put %s: %w", w.ID, err)
	}
	return w.ID, nil
}

func (s *sqlitePersistence) Delete(ctx context.Context, id week.ID) error {
	query, args, err := sq.Delete("weeks").Where(sq.Eq{"id": string(id)}).ToSql()
	if err != nil {
		return err
	}
	_, err = s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *sqlitePersistence) Exists(ctx context.Context, id week.ID) (bool, error) {
	query, args, err := sq.Select("COUNT(1)").From("weeks").Where(sq.Eq{"id": string(id)}).ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := s.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *sqlitePersistence) ListAll(ctx context.Context, opts ListOptions) ([]*week.Week, error) {
	dir := "DESC"
	if opts.Order == Oldest {
		dir = "ASC"
	}
	b := sq.Select("body").From("weeks").OrderBy("created_at "+dir, "id "+dir)
	if opts.Limit > 0 {
		b = b.Limit(uint64(opts.Limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*week.Week, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		w, err := decodeWeek(body)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Watch polls updated_at for every row and reports weeks whose stamp moved
// or that disappeared.
func (s *sqlitePersistence) Watch(ctx context.Context) (<-chan Event, error) {
	seen, err := s.stamps(ctx)
	if err != nil {
		return nil, err
	}

	events := make(chan Event, 64)
	go func() {
		defer close(events)
		ticker := time.NewTicker(SQLitePollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			current, err := s.stamps(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				select {
				case events <- Event{Type: EventWeeksInvalidated}:
				default:
				}
				continue
			}
			for id, stamp := range current {
				if seen[id] != stamp {
					select {
					case events <- Event{Type: EventWeekChanged, Week: id}:
					default:
					}
				}
			}
			for id := range seen {
				if _, ok := current[id]; !ok {
					select {
					case events <- Event{Type: EventWeekChanged, Week: id}:
					default:
					}
				}
			}
			seen = current
		}
	}()
	return events, nil
}

func (s *sqlitePersistence) stamps(ctx context.Context) (map[week.ID]string, error) {
	query, args, err := sq.Select("id", "updated_at").From("weeks").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[week.ID]string)
	for rows.Next() {
		var id, stamp string
		if err := rows.Scan(&id, &stamp); err != nil {
			return nil, err
		}
		out[week.ID(id)] = stamp
	}
	return out, rows.Err()
}

func (s *sqlitePersistence) Close() error {
	if s.conn == nil {
		return nil
	}
	_, _ = s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.conn.Close()
}

func decodeWeek(body []byte) (*week.Week, error) {
	w := &week.Week{}
	if err := json.Unmarshal(body, w); err != nil {
		return nil, fmt.Errorf("store: decode week: %w", err)
	}
	w.Normalize()
	return w, nil
}
