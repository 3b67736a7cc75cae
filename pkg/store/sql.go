package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-bread/pkg/model"
)

// Open opens a sqlite database with sensible defaults for a single-writer
// web process.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// SQL persists records in a table derived from the descriptor: the plural
// name is the table, each declared field a column.
type SQL struct {
	db      *sql.DB
	desc    *model.Descriptor
	table   string
	pk      model.FieldMeta
	columns []string
}

var _ Store = (*SQL)(nil)

// NewSQL constructs a SQL store over an open database handle.
func NewSQL(db *sql.DB, desc *model.Descriptor) (*SQL, error) {
	if db == nil {
		return nil, fmt.Errorf("store: database handle is required")
	}
	if desc == nil {
		return nil, fmt.Errorf("store: descriptor is required")
	}
	pk, ok := desc.PrimaryKeyField()
	if !ok {
		return nil, fmt.Errorf("store: descriptor %q has no primary key field", desc.Name())
	}

	columns := make([]string, 0, len(desc.Fields()))
	for _, field := range desc.Fields() {
		columns = append(columns, field.Name)
	}

	return &SQL{
		db:      db,
		desc:    desc,
		table:   desc.PluralName(),
		pk:      pk,
		columns: columns,
	}, nil
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *SQL) EnsureSchema(ctx context.Context) error {
	defs := make([]string, 0, len(s.desc.Fields()))
	for _, field := range s.desc.Fields() {
		def := field.Name + " " + sqliteType(field.Type)
		if field.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", s.table, strings.Join(defs, ", "))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("store: ensure schema for %s: %w", s.table, err)
	}
	return nil
}

func sqliteType(kind model.FieldType) string {
	switch kind {
	case model.FieldTypeInteger, model.FieldTypeBoolean:
		return "INTEGER"
	case model.FieldTypeNumber:
		return "REAL"
	default:
		return "TEXT"
	}
}

// List implements Store.
func (s *SQL) List(ctx context.Context, q Query) (Page, error) {
	where, args := s.whereClause(q.Filters)

	var total int
	countStmt := "SELECT COUNT(*) FROM " + s.table + where
	if err := s.db.QueryRowContext(ctx, countStmt, args...).Scan(&total); err != nil {
		return Page{}, fmt.Errorf("store: count %s: %w", s.table, err)
	}

	stmt := "SELECT " + strings.Join(s.columns, ", ") + " FROM " + s.table + where
	stmt += s.orderClause(q.OrderBy)
	if q.Limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, max(q.Offset, 0))
	} else if q.Offset > 0 {
		stmt += fmt.Sprintf(" LIMIT -1 OFFSET %d", q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return Page{}, fmt.Errorf("store: list %s: %w", s.table, err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return Page{}, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("store: list %s: %w", s.table, err)
	}
	return Page{Records: records, Total: total}, nil
}

// Get implements Store.
func (s *SQL) Get(ctx context.Context, pk string) (model.Record, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(s.columns, ", "), s.table, s.pk.Name)

	rows, err := s.db.QueryContext(ctx, stmt, pk)
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", s.table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("store: get %s: %w", s.table, err)
		}
		return nil, ErrNotFound
	}
	return s.scanRecord(rows)
}

// Create implements Store.
func (s *SQL) Create(ctx context.Context, rec model.Record) (string, error) {
	clone := cloneRecord(rec)
	pk := fmt.Sprint(clone[s.pk.Name])
	if clone[s.pk.Name] == nil || pk == "" {
		if s.pk.Type != model.FieldTypeString {
			return "", fmt.Errorf("store: primary key %q is required", s.pk.Name)
		}
		pk = uuid.NewString()
		clone[s.pk.Name] = pk
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.columns)), ", ")
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(s.columns, ", "), placeholders)

	args := make([]any, 0, len(s.columns))
	for _, column := range s.columns {
		args = append(args, clone[column])
	}
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return "", fmt.Errorf("store: create %s: %w", s.table, err)
	}
	return pk, nil
}

// Update implements Store. Only the supplied keys change.
func (s *SQL) Update(ctx context.Context, pk string, rec model.Record) error {
	var (
		sets []string
		args []any
	)
	for _, column := range s.columns {
		if column == s.pk.Name {
			continue
		}
		value, ok := rec[column]
		if !ok {
			continue
		}
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, pk)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", s.table, strings.Join(sets, ", "), s.pk.Name)
	result, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("store: update %s: %w", s.table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: update %s: %w", s.table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete implements Store.
func (s *SQL) Delete(ctx context.Context, pk string) error {
	stmt := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.table, s.pk.Name)
	result, err := s.db.ExecContext(ctx, stmt, pk)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", s.table, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", s.table, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQL) whereClause(filters map[string]string) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	var (
		conds []string
		args  []any
	)
	for _, column := range s.columns {
		value, ok := filters[column]
		if !ok {
			continue
		}
		conds = append(conds, column+" = ?")
		args = append(args, value)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *SQL) orderClause(orderBy string) string {
	if orderBy == "" {
		return " ORDER BY " + s.pk.Name
	}
	column := strings.TrimPrefix(orderBy, "-")
	if _, ok := s.desc.Field(column); !ok {
		return " ORDER BY " + s.pk.Name
	}
	if strings.HasPrefix(orderBy, "-") {
		return " ORDER BY " + column + " DESC"
	}
	return " ORDER BY " + column
}

func (s *SQL) scanRecord(rows *sql.Rows) (model.Record, error) {
	values := make([]any, len(s.columns))
	targets := make([]any, len(s.columns))
	for i := range values {
		targets[i] = &values[i]
	}
	if err := rows.Scan(targets...); err != nil {
		return nil, fmt.Errorf("store: scan %s: %w", s.table, err)
	}

	rec := make(model.Record, len(s.columns))
	for i, column := range s.columns {
		field, _ := s.desc.Field(column)
		rec[column] = normalizeSQLValue(field.Type, values[i])
	}
	return rec, nil
}

func normalizeSQLValue(kind model.FieldType, value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return string(v)
	case int64:
		if kind == model.FieldTypeBoolean {
			return v != 0
		}
		return v
	case bool:
		if kind == model.FieldTypeBoolean {
			return v
		}
		return v
	default:
		return v
	}
}
