// Package backend is the pass-through layer over the hosted data service.
// Every table exposes the same select / insert / update / delete contract and
// returns the backend's rows unchanged.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound      = errors.New("row not found")
	ErrMissingFilter = errors.New("update and delete require at least one filter")
)

type Filter struct {
	Column string
	Value  any
}

func Eq(column string, value any) Filter { return Filter{Column: column, Value: value} }

// Like matches Term as a case-insensitive substring of any of Columns.
type Like struct {
	Columns []string
	Term    string
}

type Query struct {
	Filters   []Filter
	Like      *Like
	OrderBy   string
	Ascending bool
	Preload   []string
	Limit     int
	Offset    int
}

type Table[T any] struct {
	db *gorm.DB
}

func NewTable[T any](db *gorm.DB) *Table[T] {
	return &Table[T]{db: db}
}

func where(db *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		db = db.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return db
}

func (t *Table[T]) scope(ctx context.Context, q Query) *gorm.DB {
	db := where(t.db.WithContext(ctx).Model(new(T)), q.Filters)

	if q.Like != nil && q.Like.Term != "" && len(q.Like.Columns) > 0 {
		term := "%" + strings.ToLower(q.Like.Term) + "%"
		exprs := make([]clause.Expression, 0, len(q.Like.Columns))
		for _, col := range q.Like.Columns {
			exprs = append(exprs, clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{clause.Column{Name: col}, term}})
		}
		db = db.Where(clause.Or(exprs...))
	}
	if q.OrderBy != "" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: q.OrderBy}, Desc: !q.Ascending})
	}
	for _, p := range q.Preload {
		db = db.Preload(p)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

func (t *Table[T]) Select(ctx context.Context, q Query) ([]T, error) {
	rows := make([]T, 0)
	if err := t.scope(ctx, q).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return rows, nil
}

// MaybeSingle returns nil without an error when nothing matches.
func (t *Table[T]) MaybeSingle(ctx context.Context, q Query) (*T, error) {
	q.Limit = 1
	rows, err := t.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (t *Table[T]) Single(ctx context.Context, q Query) (*T, error) {
	row, err := t.MaybeSingle(ctx, q)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	return row, nil
}

func (t *Table[T]) Insert(ctx context.Context, rows ...*T) error {
	if len(rows) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			if err := tx.Create(r).Error; err != nil {
				return fmt.Errorf("insert: %w", err)
			}
		}
		return nil
	})
}

// Update applies patch to every matching row and returns the rows as stored afterwards.
func (t *Table[T]) Update(ctx context.Context, patch map[string]any, filters ...Filter) ([]T, error) {
	if len(filters) == 0 {
		return nil, ErrMissingFilter
	}
	out := make([]T, 0)
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := where(tx.Model(new(T)), filters).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if len(patch) > 0 {
			if err := tx.Model(new(T)).Where("id IN ?", ids).Updates(patch).Error; err != nil {
				return err
			}
		}
		return tx.Where("id IN ?", ids).Find(&out).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	return out, nil
}

// Delete removes every matching row and returns what was removed.
func (t *Table[T]) Delete(ctx context.Context, filters ...Filter) ([]T, error) {
	if len(filters) == 0 {
		return nil, ErrMissingFilter
	}
	out := make([]T, 0)
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := where(tx.Model(new(T)), filters).Find(&out).Error; err != nil {
			return err
		}
		if len(out) == 0 {
			return nil
		}
		return where(tx, filters).Delete(new(T)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	return out, nil
}

func (t *Table[T]) Count(ctx context.Context, filters ...Filter) (int64, error) {
	var n int64
	if err := where(t.db.WithContext(ctx).Model(new(T)), filters).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Total counts the rows q matches, ignoring its order, preloads and paging.
func (t *Table[T]) Total(ctx context.Context, q Query) (int64, error) {
	q.OrderBy, q.Preload, q.Limit, q.Offset = "", nil, 0, 0
	var n int64
	if err := t.scope(ctx, q).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
