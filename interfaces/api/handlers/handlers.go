package handlers

import (
	"gorm.io/gorm"

	"people-service/domain/services"
	"people-service/infrastructure/redis"
)

// Services contains all the services needed for handlers
type Services struct {
	PersonService services.PersonService
}

// Infrastructure contains what the health checks probe
type Infrastructure struct {
	DB          *gorm.DB
	RedisClient *redis.RedisClient
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Person *PersonHandler
	Health *HealthHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(services *Services, infra *Infrastructure) *Handlers {
	h := &Handlers{
		Person: NewPersonHandler(services.PersonService),
	}
	if infra != nil {
		h.Health = NewHealthHandler(infra.DB, infra.RedisClient)
	}
	return h
}
