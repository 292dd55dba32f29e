// Package cache decorates the person store with a read-through list cache.
package cache

import (
	"context"

	"github.com/google/uuid"

	"people-service/domain/models"
	"people-service/domain/repositories"
	"people-service/pkg/logger"
)

// PersonRepository serves FindAll from the list cache and drops the cached
// list after every successful write. A miss only caches what it loaded when
// no write invalidated the list meanwhile. Cache failures are logged and
// never surface to callers.
type PersonRepository struct {
	inner repositories.PersonRepository
	list  repositories.PersonListCache
}

func NewPersonRepository(inner repositories.PersonRepository, list repositories.PersonListCache) repositories.PersonRepository {
	return &PersonRepository{inner: inner, list: list}
}

func (r *PersonRepository) FindAll(ctx context.Context) ([]models.Person, error) {
	people, found, err := r.list.GetAll(ctx)
	if err != nil {
		logger.CacheWarn("get_failed", "Failed to read people list from cache", err, nil)
	} else if found {
		logger.Cache("hit", "People list served from cache", map[string]interface{}{"count": len(people)})
		return people, nil
	}

	// Read before loading; a write that lands after this bumps it
	generation, genErr := r.list.Generation(ctx)
	if genErr != nil {
		logger.CacheWarn("generation_failed", "Failed to read people list generation", genErr, nil)
	}

	people, err = r.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if genErr != nil {
		return people, nil
	}

	stored, err := r.list.SetAll(ctx, generation, people)
	if err != nil {
		logger.CacheWarn("set_failed", "Failed to cache people list", err, nil)
	} else if !stored {
		logger.Cache("set_skipped", "People list changed while loading, not cached", nil)
	}
	return people, nil
}

func (r *PersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *PersonRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.inner.ExistsByID(ctx, id)
}

func (r *PersonRepository) Save(ctx context.Context, person *models.Person) error {
	if err := r.inner.Save(ctx, person); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *PersonRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *PersonRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, firstName, lastName *string, avatarImageURL string) (bool, error) {
	written, err := r.inner.UpdateAvatar(ctx, id, firstName, lastName, avatarImageURL)
	if err != nil {
		return false, err
	}
	if written {
		r.invalidate(ctx)
	}
	return written, nil
}

func (r *PersonRepository) invalidate(ctx context.Context) {
	if err := r.list.Invalidate(ctx); err != nil {
		logger.CacheWarn("invalidate_failed", "Failed to invalidate people list", err, nil)
	}
}
