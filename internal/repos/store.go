package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fruitstand/internal/domain"
)

// FruitStore is the record store contract. Get, Replace and Delete return
// domain.ErrInvalidID for ids the backend cannot parse and domain.ErrNotFound
// when nothing matches.
type FruitStore interface {
	List(ctx context.Context) ([]domain.Fruit, error)
	Get(ctx context.Context, id string) (domain.Fruit, error)
	Create(ctx context.Context, in domain.FruitInput) (domain.Fruit, error)
	CreateMany(ctx context.Context, ins []domain.FruitInput) ([]domain.Fruit, error)
	Replace(ctx context.Context, id string, in domain.FruitInput) (domain.Fruit, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

const (
	DefaultTimeout  = 5 * time.Second
	DefaultDatabase = "fruitstand"
	collectionName  = "fruits"
)

type Options struct {
	// Database is used when the URL does not name one.
	Database string
	// Timeout bounds every store call.
	Timeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Database == "" {
		o.Database = DefaultDatabase
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return o
}

// Open connects to the backend named by url: mongodb:// and mongodb+srv://
// select MongoDB, sqlite:<dsn> selects SQLite.
func Open(ctx context.Context, url string, opts Options) (FruitStore, error) {
	opts = opts.withDefaults()
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return OpenMongo(ctx, url, opts)
	case strings.HasPrefix(url, "sqlite:"):
		return OpenSQLite(strings.TrimPrefix(url, "sqlite:"), opts)
	default:
		return nil, fmt.Errorf("unsupported database url %q", redact(url))
	}
}

// redact drops credentials from a URL before it is logged or returned.
func redact(url string) string {
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}

type timeoutFunc func(context.Context) (context.Context, context.CancelFunc)

func withTimeout(d time.Duration) timeoutFunc {
	return func(ctx context.Context) (context.Context, context.CancelFunc) {
		return context.WithTimeout(ctx, d)
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
