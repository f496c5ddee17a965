package service

import (
	"context"
	"time"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/repository"
	"github.com/google/uuid"
)

// ResourceService manages one kind of owned record. Every operation is
// scoped to ownerID: records of other users are reported as ErrForbidden,
// missing ones as domain.ErrNotFound.
type ResourceService[T any, PT domain.ResourcePtr[T]] struct {
	repo repository.ResourceRepository[T]
	now  func() time.Time
}

func NewResourceService[T any, PT domain.ResourcePtr[T]](repo repository.ResourceRepository[T]) *ResourceService[T, PT] {
	return &ResourceService[T, PT]{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *ResourceService[T, PT]) Create(ctx context.Context, ownerID uuid.UUID, record *T) (*T, error) {
	now := s.now()
	owned := PT(record).Ownership()
	owned.ID = uuid.New()
	owned.OwnerID = ownerID
	owned.CreatedAt = now
	owned.UpdatedAt = now

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ResourceService[T, PT]) List(ctx context.Context, ownerID uuid.UUID) ([]*T, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *ResourceService[T, PT]) Get(ctx context.Context, id, ownerID uuid.UUID) (*T, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !PT(record).Ownership().BelongsTo(ownerID) {
		return nil, ErrForbidden
	}
	return record, nil
}

// Update applies patch to the record. The id, owner and creation time are
// kept from the stored record whatever the patch contains.
func (s *ResourceService[T, PT]) Update(ctx context.Context, id, ownerID uuid.UUID, patch domain.Patch[T]) (*T, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	kept := *PT(record).Ownership()
	patch.Apply(record)
	owned := PT(record).Ownership()
	*owned = kept
	owned.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ResourceService[T, PT]) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, err := s.Get(ctx, id, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
