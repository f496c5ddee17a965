package repository

import (
	"context"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/google/uuid"
)

// UserRepository is the credential store. Implementations enforce email
// uniqueness and report violations as domain.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ResourceRepository stores one kind of owned record. Lookups by id return
// domain.ErrNotFound when nothing matches; ownership is checked by callers.
type ResourceRepository[T any] interface {
	Create(ctx context.Context, record *T) error
	GetByID(ctx context.Context, id uuid.UUID) (*T, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*T, error)
	Update(ctx context.Context, record *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	User         UserRepository
	Appointments ResourceRepository[domain.Appointment]
	Allergies    ResourceRepository[domain.Allergy]
	Medications  ResourceRepository[domain.Medication]
	Reports      ResourceRepository[domain.Report]
}
