// Package repotest holds the behaviour every repository backend must share.
// Backend packages call Run with a fresh set of repositories.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Run(t *testing.T, repos *repository.Repositories) {
	t.Run("Users", func(t *testing.T) { testUsers(t, repos.User) })
	t.Run("Medications", func(t *testing.T) { testMedications(t, repos.Medications) })
	t.Run("Appointments", func(t *testing.T) { testAppointments(t, repos.Appointments) })
}

func newUser(email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.New(),
		Name:         "Maria",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testUsers(t *testing.T, users repository.UserRepository) {
	ctx := context.Background()

	user := newUser("maria@example.com")
	require.NoError(t, users.Create(ctx, user))

	t.Run("get by email", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "maria@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "Maria", got.Name)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
	})

	t.Run("email match is case sensitive", func(t *testing.T) {
		_, err := users.GetByEmail(ctx, "MARIA@example.com")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := users.Create(ctx, newUser("maria@example.com"))
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func newMedication(owner uuid.UUID, name string, createdAt time.Time) *domain.Medication {
	return &domain.Medication{
		Owned: domain.Owned{
			ID:        uuid.New(),
			OwnerID:   owner,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Name:   name,
		Dosage: "50mg",
	}
}

func testMedications(t *testing.T, repo repository.ResourceRepository[domain.Medication]) {
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()
	base := time.Now().UTC().Truncate(time.Millisecond)

	first := newMedication(owner, "Losartana", base)
	second := newMedication(owner, "AAS", base.Add(time.Second))
	foreign := newMedication(other, "Atenolol", base)
	for _, m := range []*domain.Medication{second, first, foreign} {
		require.NoError(t, repo.Create(ctx, m))
	}

	t.Run("list is scoped to owner in creation order", func(t *testing.T) {
		list, err := repo.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, first.ID, list[0].ID)
		assert.Equal(t, second.ID, list[1].ID)
	})

	t.Run("list for owner without records is empty", func(t *testing.T) {
		list, err := repo.ListByOwner(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("get returns record regardless of owner", func(t *testing.T) {
		got, err := repo.GetByID(ctx, foreign.ID)
		require.NoError(t, err)
		assert.Equal(t, other, got.OwnerID)
		assert.Equal(t, "Atenolol", got.Name)
	})

	t.Run("update", func(t *testing.T) {
		got, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		got.Dosage = "100mg"
		got.UpdatedAt = base.Add(time.Minute)
		require.NoError(t, repo.Update(ctx, got))

		reloaded, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "100mg", reloaded.Dosage)
		assert.Equal(t, "Losartana", reloaded.Name)
		assert.Equal(t, owner, reloaded.OwnerID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, second.ID))

		_, err := repo.GetByID(ctx, second.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, second.ID), domain.ErrNotFound)
	})

	t.Run("update of deleted record does not recreate it", func(t *testing.T) {
		gone := newMedication(owner, "Captopril", base.Add(2*time.Second))
		require.NoError(t, repo.Create(ctx, gone))
		require.NoError(t, repo.Delete(ctx, gone.ID))

		gone.Dosage = "25mg"
		assert.ErrorIs(t, repo.Update(ctx, gone), domain.ErrNotFound)

		_, err := repo.GetByID(ctx, gone.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func testAppointments(t *testing.T, repo repository.ResourceRepository[domain.Appointment]) {
	ctx := context.Background()
	now := time.Now().UTC()

	appt := &domain.Appointment{
		Owned: domain.Owned{
			ID:        uuid.New(),
			OwnerID:   uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:  "Cardiologista",
		Doctor: "Dr. Silva",
		Date:   "2026-11-03",
		Time:   "14:30",
	}
	require.NoError(t, repo.Create(ctx, appt))

	got, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiologista", got.Title)
	assert.Equal(t, "Dr. Silva", got.Doctor)
	assert.Equal(t, "2026-11-03", got.Date)
	assert.Equal(t, "14:30", got.Time)
	assert.Empty(t, got.Location)
	assert.Empty(t, got.Notes)
}
