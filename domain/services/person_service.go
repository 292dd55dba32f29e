package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"people-service/domain/models"
)

// Custom errors for person service
var (
	ErrPersonNotFound = errors.New("person not found")
	// ErrStoreFailure wraps any error surfaced by the record store
	ErrStoreFailure = errors.New("person store failure")
)

// PersonInput carries the caller-supplied fields. There is no avatar field:
// the avatar is always derived.
type PersonInput struct {
	FirstName *string
	LastName  *string
	Gender    *string
	Age       *int
}

// PersonService handles person record management
type PersonService interface {
	// Create stores a new person with a derived avatar
	Create(ctx context.Context, input PersonInput) (*models.Person, error)

	// ReadAll returns every person, empty when none exist
	ReadAll(ctx context.Context) ([]models.Person, error)

	// Get returns one person or ErrPersonNotFound
	Get(ctx context.Context, id uuid.UUID) (*models.Person, error)

	// Update overwrites name, gender and age, then re-derives the avatar
	Update(ctx context.Context, id uuid.UUID, input PersonInput) (*models.Person, error)

	// Delete removes a person or returns ErrPersonNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}
