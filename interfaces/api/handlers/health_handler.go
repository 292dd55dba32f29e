package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"people-service/infrastructure/redis"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db          *gorm.DB
	redisClient *redis.RedisClient
}

// NewHealthHandler creates a new health handler. redisClient may be nil.
func NewHealthHandler(db *gorm.DB, redisClient *redis.RedisClient) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
	}
}

// ComponentHealth represents health status of a component
type ComponentHealth struct {
	Status  string `json:"status"` // "ok", "error", "unavailable"
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// DetailedHealthResponse represents detailed health check response
type DetailedHealthResponse struct {
	Status     string                     `json:"status"` // "healthy", "degraded", "unhealthy"
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

// DetailedHealth godoc
// @Summary Get detailed system health
// @Description Returns health of the database and the list cache
// @Tags Health
// @Produce json
// @Success 200 {object} DetailedHealthResponse
// @Router /health/detailed [get]
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	response := DetailedHealthResponse{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	dbHealth := h.checkDatabase(ctx)
	response.Components["database"] = dbHealth

	redisHealth := h.checkRedis(ctx)
	response.Components["redis"] = redisHealth

	// The store is required; the cache only degrades
	switch {
	case dbHealth.Status != "ok":
		response.Status = "unhealthy"
	case redisHealth.Status == "error":
		response.Status = "degraded"
	default:
		response.Status = "healthy"
	}

	statusCode := fiber.StatusOK
	if response.Status == "unhealthy" {
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(response)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.db == nil {
		return ComponentHealth{Status: "error", Message: "Database not configured"}
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return ComponentHealth{Status: "error", Message: "Failed to get database connection: " + err.Error()}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return ComponentHealth{Status: "error", Message: "Database ping failed: " + err.Error()}
	}

	return ComponentHealth{Status: "ok", Message: "Connected", Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ComponentHealth {
	start := time.Now()

	if h.redisClient == nil {
		return ComponentHealth{Status: "unavailable", Message: "Redis not configured"}
	}

	if err := h.redisClient.Ping(ctx); err != nil {
		return ComponentHealth{Status: "error", Message: "Redis ping failed: " + err.Error()}
	}

	return ComponentHealth{Status: "ok", Message: "Connected", Latency: time.Since(start).String()}
}
