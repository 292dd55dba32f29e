package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"people-service/domain/models"
)

// ErrRecordNotFound is returned by FindByID when no row has the id.
var ErrRecordNotFound = errors.New("record not found")

//go:generate mockgen -source=person_repository.go -destination=../../mocks/mock_person_repository.go -package=mocks

// PersonRepository is the durable keyed store for Person records.
type PersonRepository interface {
	// FindAll returns every person in insertion order.
	FindAll(ctx context.Context) ([]models.Person, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
	// Save inserts when person.ID is zero and updates otherwise.
	Save(ctx context.Context, person *models.Person) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	// UpdateAvatar writes only the avatar column, and only while the row
	// still carries the names the avatar was derived from. It reports
	// whether a row was written.
	UpdateAvatar(ctx context.Context, id uuid.UUID, firstName, lastName *string, avatarImageURL string) (bool, error)
}

// PersonListCache keeps a copy of the FindAll result.
//
// Every Invalidate bumps a generation. SetAll only stores a list when the
// generation still equals the one read before the list was loaded, so a
// list loaded before a write can never be cached after that write.
type PersonListCache interface {
	GetAll(ctx context.Context) (people []models.Person, found bool, err error)
	Generation(ctx context.Context) (int64, error)
	// SetAll reports false when the generation moved and nothing was stored.
	SetAll(ctx context.Context, generation int64, people []models.Person) (bool, error)
	Invalidate(ctx context.Context) error
}
