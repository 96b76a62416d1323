package repository

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/NetSkoocKlim/storefront/pkg/storage"
)

// Values holds column values for inserts and updates, keyed by column name.
type Values map[string]any

// Repository is a generic data-access facade for a single entity type.
// It is constructed with an explicit Querier (connection pool or open
// transaction); every operation runs a single statement, so operations on
// the pool are durable when they return and hold no transaction across
// call boundaries.
type Repository[T any] struct {
	q    storage.Querier
	meta *tableMeta
	err  error
}

// New creates a repository for T bound to the given querier. Metadata
// problems (missing TableName, no db tags) surface on first use.
func New[T any](q storage.Querier) *Repository[T] {
	var model T
	meta, err := metaFor(model)
	return &Repository[T]{q: q, meta: meta, err: err}
}

// Within returns a copy of the repository bound to another querier,
// typically an open transaction for composite operations.
func (r *Repository[T]) Within(q storage.Querier) *Repository[T] {
	return &Repository[T]{q: q, meta: r.meta, err: r.err}
}

// Table returns the entity's table name.
func (r *Repository[T]) Table() string {
	if r.meta == nil {
		return ""
	}
	return r.meta.name
}

// FindByID returns the row with the given id that also matches all extra
// conditions, or nil when absent.
func (r *Repository[T]) FindByID(ctx context.Context, id int64, extra ...Condition) (*T, error) {
	conds := append([]Condition{Eq("id", id)}, extra...)
	return r.FindOneOrNone(ctx, conds...)
}

// FindAll returns every row matching the conjunction of conditions.
// Ordering is unspecified.
func (r *Repository[T]) FindAll(ctx context.Context, conds ...Condition) ([]T, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err := r.checkColumns(conds, nil); err != nil {
		return nil, err
	}

	sql, args, err := r.buildSelect(conds, 0)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, &storage.QueryError{Query: sql, Err: err}
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// FindOneOrNone returns the single row matching the conditions, nil when
// none match, and storage.ErrIntegrity when more than one matches.
func (r *Repository[T]) FindOneOrNone(ctx context.Context, conds ...Condition) (*T, error) {
	if r.err != nil {
		return nil, r.err
	}
	if err := r.checkColumns(conds, nil); err != nil {
		return nil, err
	}

	// LIMIT 2 is enough to detect a multi-row match without draining the set.
	sql, args, err := r.buildSelect(conds, 2)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, &storage.QueryError{Query: sql, Err: err}
	}
	defer rows.Close()

	results, err := r.scanAll(rows)
	if err != nil {
		return nil, err
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return &results[0], nil
	default:
		return nil, fmt.Errorf("%w in %s", storage.ErrIntegrity, r.meta.name)
	}
}

// Add inserts one row and returns the generated id. The write is committed
// before returning when the repository runs on the pool.
func (r *Repository[T]) Add(ctx context.Context, vals Values) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	if err := r.checkColumns(nil, vals); err != nil {
		return 0, err
	}

	sql, args, err := r.buildInsert(vals)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, &storage.QueryError{Query: sql, Err: err}
	}
	return id, nil
}

// Update sets the given values on every row matching the conditions.
func (r *Repository[T]) Update(ctx context.Context, conds []Condition, vals Values) error {
	if r.err != nil {
		return r.err
	}
	if err := r.checkColumns(conds, vals); err != nil {
		return err
	}

	sql, args, err := r.buildUpdate(conds, vals)
	if err != nil {
		return err
	}

	if _, err := r.q.Exec(ctx, sql, args...); err != nil {
		return &storage.QueryError{Query: sql, Err: err}
	}
	return nil
}

// buildSelect generates the SELECT statement. limit <= 0 means no LIMIT.
func (r *Repository[T]) buildSelect(conds []Condition, limit int) (string, []any, error) {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(strings.Join(r.meta.columnNames(), ", "))
	sql.WriteString(" FROM ")
	sql.WriteString(r.meta.name)

	whereSQL, args, err := BuildWhere(conds, 1)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
	}

	if limit > 0 {
		sql.WriteString(fmt.Sprintf(" LIMIT %d", limit))
	}

	return sql.String(), args, nil
}

// buildInsert generates the INSERT statement with RETURNING id. Columns are
// emitted in sorted order so the SQL is stable for a given value set.
func (r *Repository[T]) buildInsert(vals Values) (string, []any, error) {
	if len(vals) == 0 {
		return "", nil, fmt.Errorf("no values to insert")
	}

	columns := sortedKeys(vals)
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = vals[col]
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.meta.name,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
	return sql, args, nil
}

// buildUpdate generates the UPDATE statement. SET parameters come first,
// WHERE parameters continue the numbering.
func (r *Repository[T]) buildUpdate(conds []Condition, vals Values) (string, []any, error) {
	if len(vals) == 0 {
		return "", nil, fmt.Errorf("no columns to update")
	}

	columns := sortedKeys(vals)
	setClauses := make([]string, len(columns))
	args := make([]any, 0, len(columns))
	paramNum := 1
	for i, col := range columns {
		setClauses[i] = fmt.Sprintf("%s = $%d", col, paramNum)
		args = append(args, vals[col])
		paramNum++
	}

	var sql strings.Builder
	sql.WriteString("UPDATE ")
	sql.WriteString(r.meta.name)
	sql.WriteString(" SET ")
	sql.WriteString(strings.Join(setClauses, ", "))

	whereSQL, whereArgs, err := BuildWhere(conds, paramNum)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build WHERE clause: %w", err)
	}
	if whereSQL != "" {
		sql.WriteString(" ")
		sql.WriteString(whereSQL)
		args = append(args, whereArgs...)
	}

	return sql.String(), args, nil
}

// scanAll scans every row into entity values using the column metadata.
func (r *Repository[T]) scanAll(rows pgx.Rows) ([]T, error) {
	var results []T
	for rows.Next() {
		var item T
		v := reflect.ValueOf(&item).Elem()

		dests := make([]any, len(r.meta.columns))
		for i, col := range r.meta.columns {
			dests[i] = v.Field(col.index).Addr().Interface()
		}

		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", r.meta.name, err)
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkColumns rejects conditions and values referencing columns the
// entity does not declare, catching typos before they reach the database.
func (r *Repository[T]) checkColumns(conds []Condition, vals Values) error {
	for _, cond := range conds {
		if !r.meta.hasColumn(cond.Column) {
			return fmt.Errorf("%w %q in %s", storage.ErrUnknownColumn, cond.Column, r.meta.name)
		}
	}
	for col := range vals {
		if !r.meta.hasColumn(col) {
			return fmt.Errorf("%w %q in %s", storage.ErrUnknownColumn, col, r.meta.name)
		}
	}
	return nil
}

func sortedKeys(vals Values) []string {
	keys := make([]string, 0, len(vals))
	for k := range vals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
