package repository

import (
	"context"
	"fmt"
	"log/slog"

	"clubportal/internal/csvstore"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = csvstore.ErrRecordNotFound

// Table is a typed view over one store table. T must be a struct with csv tags.
type Table[T any] struct {
	store *csvstore.Store
	name  string
}

// NewTable creates a typed table accessor.
func NewTable[T any](store *csvstore.Store, name string) *Table[T] {
	return &Table[T]{store: store, name: name}
}

// Name returns the table name.
func (t *Table[T]) Name() string {
	return t.name
}

// List returns all records in file order.
func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	return t.Filter(ctx, nil)
}

// Filter returns the records for which keep returns true. A nil keep keeps all.
// Rows that do not decode, such as a malformed JSON cell, are logged and
// skipped.
func (t *Table[T]) Filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	tbl, err := t.store.Load(ctx, t.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, tbl.Len())
	for _, row := range tbl.Rows {
		var v T
		if err := csvstore.Unmarshal(row, &v); err != nil {
			slog.WarnContext(ctx, "skipping undecodable row",
				slog.String("table", t.name),
				slog.Int64("id", row.Int(csvstore.ColumnID)),
				slog.Any("err", err))
			continue
		}
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// First returns the first record matching keep.
func (t *Table[T]) First(ctx context.Context, keep func(*T) bool) (*T, error) {
	items, err := t.Filter(ctx, keep)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// Get returns the record with id.
func (t *Table[T]) Get(ctx context.Context, id int64) (*T, error) {
	tbl, err := t.store.Load(ctx, t.name)
	if err != nil {
		return nil, err
	}
	for _, row := range tbl.Rows {
		if row.Int(csvstore.ColumnID) != id {
			continue
		}
		var v T
		if err := csvstore.Unmarshal(row, &v); err != nil {
			return nil, fmt.Errorf("decode %s row %d: %w", t.name, id, err)
		}
		return &v, nil
	}
	return nil, ErrNotFound
}

// Insert adds v and returns its assigned id.
func (t *Table[T]) Insert(ctx context.Context, v *T) (int64, error) {
	row, err := csvstore.Marshal(v)
	if err != nil {
		return 0, err
	}
	return t.store.AddRecord(ctx, t.name, row)
}

// InsertMany adds every item with one write and returns their ids.
func (t *Table[T]) InsertMany(ctx context.Context, items []T) ([]int64, error) {
	rows := make([]csvstore.Row, 0, len(items))
	for i := range items {
		row, err := csvstore.Marshal(&items[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return t.store.AddRecords(ctx, t.name, rows)
}

// InsertUnique adds v unless another record has the same value in column.
func (t *Table[T]) InsertUnique(ctx context.Context, column string, v *T) (int64, error) {
	row, err := csvstore.Marshal(v)
	if err != nil {
		return 0, err
	}
	return t.store.AddUnique(ctx, t.name, column, row)
}

// InsertUniqueBy adds v unless another record has the same values in all
// of columns.
func (t *Table[T]) InsertUniqueBy(ctx context.Context, columns []string, v *T) (int64, error) {
	row, err := csvstore.Marshal(v)
	if err != nil {
		return 0, err
	}
	return t.store.AddUniqueBy(ctx, t.name, columns, row)
}

// Update overwrites the given columns of the record with id.
func (t *Table[T]) Update(ctx context.Context, id int64, changes csvstore.Row) error {
	return t.store.UpdateRecord(ctx, t.name, id, changes)
}

// Modify decodes the record with id, passes it to fn and applies the changes
// fn returns. The table stays locked in between.
func (t *Table[T]) Modify(ctx context.Context, id int64, fn func(*T) (csvstore.Row, error)) error {
	return t.store.UpdateFunc(ctx, t.name, id, func(current csvstore.Row) (csvstore.Row, error) {
		var v T
		if err := csvstore.Unmarshal(current, &v); err != nil {
			return nil, fmt.Errorf("decode %s row %d: %w", t.name, id, err)
		}
		return fn(&v)
	})
}

// Delete removes the record with id.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	_, err := t.store.DeleteRecord(ctx, t.name, id)
	return err
}

// DeleteWhere removes every record whose column equals value and returns
// how many were removed. No match is not an error.
func (t *Table[T]) DeleteWhere(ctx context.Context, column, value string) (int, error) {
	n, err := t.store.DeleteWhere(ctx, t.name, column, value)
	if err != nil && n == 0 && isNotFound(err) {
		return 0, nil
	}
	return n, err
}
