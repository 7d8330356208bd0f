package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CheckFunc probes a dependency; nil means the dependency is not configured.
type CheckFunc func() error

// HealthHandler reports the state of the database and the event broker.
type HealthHandler struct {
	database CheckFunc
	events   CheckFunc
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(database, events CheckFunc) *HealthHandler {
	return &HealthHandler{
		database: database,
		events:   events,
	}
}

// HandleHealth answers 200 when every configured dependency responds, 503 otherwise.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status := "healthy"
	database := probe(h.database)
	events := probe(h.events)
	if database == "unreachable" || events == "unreachable" {
		status = "degraded"
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"database": database,
		"events":   events,
		"time":     time.Now().Format(time.RFC3339),
	})
}

func probe(check CheckFunc) string {
	if check == nil {
		return "disabled"
	}
	if err := check(); err != nil {
		return "unreachable"
	}
	return "ok"
}
