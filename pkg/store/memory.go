package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-bread/pkg/model"
)

// Memory is an insertion-ordered, mutex-guarded in-memory store. String
// primary keys left blank on Create are filled with a fresh uuid.
type Memory struct {
	mu   sync.RWMutex
	desc *model.Descriptor
	pks  []string
	recs map[string]model.Record
}

var _ Store = (*Memory)(nil)

// NewMemory constructs an empty Memory store for the descriptor.
func NewMemory(desc *model.Descriptor) (*Memory, error) {
	if desc == nil {
		return nil, fmt.Errorf("store: descriptor is required")
	}
	if _, ok := desc.PrimaryKeyField(); !ok {
		return nil, fmt.Errorf("store: descriptor %q has no primary key field", desc.Name())
	}
	return &Memory{
		desc: desc,
		recs: make(map[string]model.Record),
	}, nil
}

// MustSeed creates the given records, panicking on failure. Useful for
// examples and tests.
func (m *Memory) MustSeed(records ...model.Record) *Memory {
	for _, rec := range records {
		if _, err := m.Create(context.Background(), rec); err != nil {
			panic(err)
		}
	}
	return m
}

// List implements Store.
func (m *Memory) List(_ context.Context, q Query) (Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]model.Record, 0, len(m.pks))
	for _, pk := range m.pks {
		rec := m.recs[pk]
		if matchesFilters(rec, q.Filters) {
			matched = append(matched, cloneRecord(rec))
		}
	}

	if q.OrderBy != "" {
		field := strings.TrimPrefix(q.OrderBy, "-")
		desc := strings.HasPrefix(q.OrderBy, "-")
		sort.SliceStable(matched, func(i, j int) bool {
			less := fmt.Sprint(matched[i][field]) < fmt.Sprint(matched[j][field])
			if desc {
				return !less
			}
			return less
		})
	}

	total := len(matched)
	matched = slicePage(matched, q.Offset, q.Limit)
	return Page{Records: matched, Total: total}, nil
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, pk string) (model.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.recs[pk]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec), nil
}

// Create implements Store.
func (m *Memory) Create(_ context.Context, rec model.Record) (string, error) {
	pkField, _ := m.desc.PrimaryKeyField()

	m.mu.Lock()
	defer m.mu.Unlock()

	clone := cloneRecord(rec)
	pk := fmt.Sprint(clone[pkField.Name])
	if clone[pkField.Name] == nil || pk == "" {
		if pkField.Type != model.FieldTypeString {
			return "", fmt.Errorf("store: primary key %q is required", pkField.Name)
		}
		pk = uuid.NewString()
		clone[pkField.Name] = pk
	}
	if _, exists := m.recs[pk]; exists {
		return "", fmt.Errorf("store: duplicate primary key %q", pk)
	}

	m.pks = append(m.pks, pk)
	m.recs[pk] = clone
	return pk, nil
}

// Update implements Store. Only the supplied keys change.
func (m *Memory) Update(_ context.Context, pk string, rec model.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.recs[pk]
	if !ok {
		return ErrNotFound
	}
	for key, value := range rec {
		existing[key] = value
	}
	return nil
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, pk string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recs[pk]; !ok {
		return ErrNotFound
	}
	delete(m.recs, pk)
	for i, existing := range m.pks {
		if existing == pk {
			m.pks = append(m.pks[:i], m.pks[i+1:]...)
			break
		}
	}
	return nil
}

func matchesFilters(rec model.Record, filters map[string]string) bool {
	for field, want := range filters {
		if fmt.Sprint(rec[field]) != want {
			return false
		}
	}
	return true
}

func slicePage(records []model.Record, offset, limit int) []model.Record {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		return nil
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

func cloneRecord(rec model.Record) model.Record {
	out := make(model.Record, len(rec))
	for key, value := range rec {
		out[key] = value
	}
	return out
}
