package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"fruitstand/internal/domain"
	applog "fruitstand/internal/log"
)

// SQLiteStore keeps fruit documents in a single table. NULL name/color
// columns stand for absent fields.
type SQLiteStore struct {
	db      *sqlx.DB
	timeout timeoutFunc
}

func OpenSQLite(dsn string, opts Options) (*SQLiteStore, error) {
	opts = opts.withDefaults()
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" || dsn == "" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	applog.Event("db.open", nil, map[string]any{"backend": "sqlite", "dsn": dsn})
	return &SQLiteStore{db: db, timeout: withTimeout(opts.Timeout)}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS fruits(
  id TEXT PRIMARY KEY,
  name TEXT,
  color TEXT,
  ready_to_eat INTEGER NOT NULL DEFAULT 0
);`
	_, err := db.Exec(schema)
	return err
}

// DB exposes the handle for tests and maintenance tooling.
func (s *SQLiteStore) DB() *sqlx.DB { return s.db }

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Fruit, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	out := []domain.Fruit{}
	err := s.db.SelectContext(ctx, &out, `SELECT id, name, color, ready_to_eat FROM fruits ORDER BY rowid`)
	return out, err
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (domain.Fruit, error) {
	key, err := parseUUID(id)
	if err != nil {
		return domain.Fruit{}, err
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	var f domain.Fruit
	err = s.db.GetContext(ctx, &f, `SELECT id, name, color, ready_to_eat FROM fruits WHERE id = ?`, key)
	if isNoRows(err) {
		return domain.Fruit{}, domain.ErrNotFound
	}
	return f, err
}

func (s *SQLiteStore) Create(ctx context.Context, in domain.FruitInput) (domain.Fruit, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	return insert(ctx, s.db, in)
}

func (s *SQLiteStore) CreateMany(ctx context.Context, ins []domain.FruitInput) ([]domain.Fruit, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out := make([]domain.Fruit, 0, len(ins))
	for _, in := range ins {
		f, err := insert(ctx, tx, in)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func insert(ctx context.Context, ex sqlx.ExecerContext, in domain.FruitInput) (domain.Fruit, error) {
	f := domain.Fruit{ID: uuid.NewString(), Name: in.Name, Color: in.Color, ReadyToEat: in.ReadyToEat}
	_, err := ex.ExecContext(ctx, `INSERT INTO fruits(id, name, color, ready_to_eat) VALUES(?,?,?,?)`,
		f.ID, f.Name, f.Color, f.ReadyToEat)
	if err != nil {
		return domain.Fruit{}, err
	}
	return f, nil
}

func (s *SQLiteStore) Replace(ctx context.Context, id string, in domain.FruitInput) (domain.Fruit, error) {
	key, err := parseUUID(id)
	if err != nil {
		return domain.Fruit{}, err
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `UPDATE fruits SET name = ?, color = ?, ready_to_eat = ? WHERE id = ?`,
		in.Name, in.Color, in.ReadyToEat, key)
	if err != nil {
		return domain.Fruit{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Fruit{}, err
	} else if n == 0 {
		return domain.Fruit{}, domain.ErrNotFound
	}
	return domain.Fruit{ID: key, Name: in.Name, Color: in.Color, ReadyToEat: in.ReadyToEat}, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	key, err := parseUUID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `DELETE FROM fruits WHERE id = ?`, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := s.timeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `DELETE FROM fruits`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close(context.Context) error {
	err := s.db.Close()
	applog.Event("db.close", err, map[string]any{"backend": "sqlite"})
	return err
}

func parseUUID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return u.String(), nil
}
