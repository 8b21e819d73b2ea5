package resource

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when an identifier resolves to no row. The router
// maps it to 404 before any mutation is attempted.
var ErrNotFound = errors.New("not found")

// Store is the persistence surface the router factory composes over. Field
// maps are keyed by column name; values are already coerced.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, fields map[string]any) (*T, error)
	Update(ctx context.Context, id string, fields map[string]any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// GormStore implements Store on a *gorm.DB. Every mutation runs in its own
// transaction, so a failing write rolls back before the error surfaces, and
// every successful write is followed by a fresh read of the row.
type GormStore[T any] struct {
	db *gorm.DB
}

func NewGormStore[T any](db *gorm.DB) *GormStore[T] { return &GormStore[T]{db: db} }

func (s *GormStore[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *GormStore[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts the given columns, generating an identifier when the caller
// did not supply one. Columns absent from the map take their schema defaults.
func (s *GormStore[T]) Create(ctx context.Context, fields map[string]any) (*T, error) {
	vals := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		vals[k] = v
	}
	id, ok := vals["id"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		vals["id"] = id
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(new(T)).Create(vals).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update overwrites only the supplied columns. The identifier is immutable:
// an "id" key in the map is dropped, never applied.
func (s *GormStore[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	vals := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" {
			continue
		}
		vals[k] = v
	}
	if len(vals) > 0 {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Model(existing).Updates(vals).Error
		})
		if err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *GormStore[T]) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(new(T), "id = ?", id).Error
	})
}
