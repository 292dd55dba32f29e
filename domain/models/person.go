package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Person struct {
	ID uuid.UUID `gorm:"primaryKey;type:uuid" json:"id"`

	// Person info, all optional
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Gender    *string `json:"gender"`
	Age       *int    `json:"age"`

	// Derived from FirstName+LastName on every write
	AvatarImageURL string `gorm:"column:avatar_image_url" json:"avatarImageUrl"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Person) TableName() string {
	return "people"
}

// BeforeCreate assigns the id on first save.
func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
