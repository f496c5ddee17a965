package gormrepo

import (
	"context"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resourceRepository stores any owned record type in its own table.
type resourceRepository[T any] struct {
	db *gorm.DB
}

func NewResourceRepository[T any](db *gorm.DB) *resourceRepository[T] {
	return &resourceRepository[T]{db: db}
}

func (r *resourceRepository[T]) Create(ctx context.Context, record *T) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *resourceRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *resourceRepository[T]) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*T, error) {
	records := make([]*T, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update rewrites every column of an existing row. It never inserts, so a
// record deleted in the meantime is reported as domain.ErrNotFound.
func (r *resourceRepository[T]) Update(ctx context.Context, record *T) error {
	result := r.db.WithContext(ctx).Model(record).Select("*").Updates(record)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *resourceRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
