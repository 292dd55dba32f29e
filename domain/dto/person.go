package dto

import (
	"github.com/google/uuid"

	"people-service/domain/models"
	"people-service/domain/services"
)

// PersonRequest is the body of POST /people and PUT /people/:id.
// AvatarImageURL is accepted so clients can echo a full record back, but it
// is never used.
type PersonRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Gender         *string `json:"gender"`
	Age            *int    `json:"age"`
	AvatarImageURL *string `json:"avatarImageUrl,omitempty"`
}

// PersonResponse is the DTO for person API responses
type PersonResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      *string   `json:"firstName"`
	LastName       *string   `json:"lastName"`
	Gender         *string   `json:"gender"`
	Age            *int      `json:"age"`
	AvatarImageURL string    `json:"avatarImageUrl"`
}

// ToInput drops the avatar field.
func (r PersonRequest) ToInput() services.PersonInput {
	return services.PersonInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Gender:    r.Gender,
		Age:       r.Age,
	}
}

func PersonToResponse(p *models.Person) PersonResponse {
	return PersonResponse{
		ID:             p.ID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Gender:         p.Gender,
		Age:            p.Age,
		AvatarImageURL: p.AvatarImageURL,
	}
}

func PeopleToResponse(people []models.Person) []PersonResponse {
	result := make([]PersonResponse, len(people))
	for i := range people {
		result[i] = PersonToResponse(&people[i])
	}
	return result
}
