package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"namavruksha/internal/container"
	"namavruksha/pkg/database"
	"namavruksha/pkg/redis"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	container *container.Container
	db        *database.PostgresDB
	redis     *redis.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(container *container.Container, db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		container: container,
		db:        db,
		redis:     redisClient,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	checks := map[string]string{}
	status := "healthy"
	code := http.StatusOK

	if err := h.db.Health(r.Context()); err != nil {
		logger.WithError(err).Error("Database health check failed")
		checks["database"] = "unhealthy"
		status = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if err := h.redis.Health(r.Context()); err != nil {
		logger.WithError(err).Error("Redis health check failed")
		checks["redis"] = "unhealthy"
		status = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		checks["redis"] = "ok"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
		Service:   "namavruksha",
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode health check response")
	}
}
