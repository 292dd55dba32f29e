package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"people-service/domain/models"
	"people-service/domain/repositories"
	"people-service/pkg/logger"
)

type PersonRepositoryImpl struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) repositories.PersonRepository {
	return &PersonRepositoryImpl{db: db}
}

func (r *PersonRepositoryImpl) FindAll(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&people).Error
	if err != nil {
		return nil, err
	}
	logger.DB("people_listed", "Listed people", map[string]interface{}{"count": len(people)})
	return people, nil
}

func (r *PersonRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	var person models.Person
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrRecordNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *PersonRepositoryImpl) Save(ctx context.Context, person *models.Person) error {
	if person.ID == uuid.Nil {
		return r.db.WithContext(ctx).Create(person).Error
	}
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *PersonRepositoryImpl) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Person{}).Error
}

func (r *PersonRepositoryImpl) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Person{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PersonRepositoryImpl) UpdateAvatar(ctx context.Context, id uuid.UUID, firstName, lastName *string, avatarImageURL string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Person{}).
		Where("id = ?", id)
	query = whereNullable(query, "first_name", firstName)
	query = whereNullable(query, "last_name", lastName)

	result := query.Updates(map[string]interface{}{
		"avatar_image_url": avatarImageURL,
		"updated_at":       time.Now(),
	})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// whereNullable matches column against value, treating nil as SQL NULL.
func whereNullable(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *value)
}
