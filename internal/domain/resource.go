package domain

import (
	"time"

	"github.com/google/uuid"
)

// Owned holds the fields shared by every record that belongs to a single user.
type Owned struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index" bson:"ownerId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (o *Owned) Ownership() *Owned { return o }

// BelongsTo reports whether the record was created by userID.
func (o *Owned) BelongsTo(userID uuid.UUID) bool {
	return o.OwnerID == userID
}

// ResourcePtr is satisfied by pointers to the owned record types.
type ResourcePtr[T any] interface {
	*T
	Ownership() *Owned
}

// Input is a create request for T.
type Input[T any] interface {
	Validate() error
	Build() T
}

// Patch is a partial update for T. Only the fields that were provided are
// applied.
type Patch[T any] interface {
	Validate() error
	Apply(*T)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
