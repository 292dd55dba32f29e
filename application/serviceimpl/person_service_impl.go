package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"people-service/domain/models"
	"people-service/domain/repositories"
	"people-service/domain/services"
	"people-service/pkg/avatar"
	"people-service/pkg/logger"
)

type PersonServiceImpl struct {
	personRepo repositories.PersonRepository
	avatars    *avatar.Generator
}

func NewPersonService(personRepo repositories.PersonRepository, avatars *avatar.Generator) services.PersonService {
	return &PersonServiceImpl{
		personRepo: personRepo,
		avatars:    avatars,
	}
}

// MergePerson returns existing with every mutable field replaced from input.
// The avatar is derived after the name fields are applied. ID and CreatedAt
// are kept.
func MergePerson(existing models.Person, input services.PersonInput, avatars *avatar.Generator) models.Person {
	merged := existing
	merged.FirstName = input.FirstName
	merged.LastName = input.LastName
	merged.Gender = input.Gender
	merged.Age = input.Age
	merged.AvatarImageURL = avatars.Derive(merged.FirstName, merged.LastName)
	return merged
}

func (s *PersonServiceImpl) Create(ctx context.Context, input services.PersonInput) (*models.Person, error) {
	person := MergePerson(models.Person{}, input, s.avatars)

	if err := s.personRepo.Save(ctx, &person); err != nil {
		logger.PersonError("create_failed", "Failed to save person", err, nil)
		return nil, storeFailure("save person", err)
	}

	logger.Person("created", "Person created", map[string]interface{}{"id": person.ID.String()})
	return &person, nil
}

func (s *PersonServiceImpl) ReadAll(ctx context.Context) ([]models.Person, error) {
	people, err := s.personRepo.FindAll(ctx)
	if err != nil {
		return nil, storeFailure("list people", err)
	}
	if people == nil {
		people = []models.Person{}
	}
	return people, nil
}

func (s *PersonServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	person, err := s.personRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, storeFailure("find person", err)
	}
	return person, nil
}

func (s *PersonServiceImpl) Update(ctx context.Context, id uuid.UUID, input services.PersonInput) (*models.Person, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := MergePerson(*existing, input, s.avatars)

	if err := s.personRepo.Save(ctx, &updated); err != nil {
		logger.PersonError("update_failed", "Failed to save person", err, map[string]interface{}{"id": id.String()})
		return nil, storeFailure("save person", err)
	}

	logger.Person("updated", "Person updated", map[string]interface{}{"id": id.String()})
	return &updated, nil
}

func (s *PersonServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.personRepo.ExistsByID(ctx, id)
	if err != nil {
		return storeFailure("check person", err)
	}
	if !exists {
		return notFound(id)
	}

	if err := s.personRepo.DeleteByID(ctx, id); err != nil {
		logger.PersonError("delete_failed", "Failed to delete person", err, map[string]interface{}{"id": id.String()})
		return storeFailure("delete person", err)
	}

	logger.Person("deleted", "Person deleted", map[string]interface{}{"id": id.String()})
	return nil
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("%w with id %s", services.ErrPersonNotFound, id)
}

func storeFailure(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", services.ErrStoreFailure, op, err)
}
