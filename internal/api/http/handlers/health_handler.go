package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

const readyTimeout = 2 * time.Second

// Pinger is implemented by dependencies the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	names       []string
	deps        map[string]Pinger
}

// NewHealthHandler returns a new handler instance. deps maps a dependency name to its probe.
func NewHealthHandler(serviceName, version string, deps map[string]Pinger) *HealthHandler {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	return &HealthHandler{serviceName: serviceName, version: version, names: names, deps: deps}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready pings every dependency and answers 503 if any of them fails.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
	defer cancel()

	deps := make(fiber.Map, len(h.names))
	status, code := "ready", fiber.StatusOK
	for _, name := range h.names {
		started := time.Now()
		err := h.deps[name].Ping(ctx)
		entry := fiber.Map{"status": "ok", "latency_ms": time.Since(started).Milliseconds()}
		if err != nil {
			entry["status"] = "down"
			entry["error"] = err.Error()
			status, code = "unavailable", fiber.StatusServiceUnavailable
		}
		deps[name] = entry
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"service":      h.serviceName,
		"dependencies": deps,
	})
}
