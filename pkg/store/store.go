package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-bread/pkg/model"
)

// ErrNotFound is returned when no record matches the requested primary key.
var ErrNotFound = errors.New("store: record not found")

// Query shapes a List call: offset/limit paging, equality filters keyed by
// field name, and an optional ordering field (prefix with "-" for
// descending).
type Query struct {
	Offset  int
	Limit   int
	Filters map[string]string
	OrderBy string
}

// Page is one page of records plus the unpaged total, which the view layer
// needs to build pagination links.
type Page struct {
	Records []model.Record
	Total   int
}

// Store is the record persistence contract the view layer depends on.
// Records travel as field-name-keyed maps; primary keys are rendered to
// strings for URLs.
type Store interface {
	List(ctx context.Context, q Query) (Page, error)
	Get(ctx context.Context, pk string) (model.Record, error)
	Create(ctx context.Context, rec model.Record) (string, error)
	Update(ctx context.Context, pk string, rec model.Record) error
	Delete(ctx context.Context, pk string) error
}
