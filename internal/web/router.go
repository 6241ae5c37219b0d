package web

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/observability"
	apperrors "github.com/spec-kit/launch-watch/pkg/util/errorutil"
)

// RegisterRoutes wires the landing page routes and middlewares.
func RegisterRoutes(app *fiber.App, h *Handler, logger *zap.Logger, metrics *observability.Metrics) {
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorMiddleware(logger, metrics))

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/", h.Index)
	app.Post("/subscribe", h.Subscribe)
	app.Post("/contact", h.Contact)

	api := app.Group("/api")
	api.Get("/capture/status", h.Status)
	api.Get("/components", h.Components)
	api.Get("/components/:id", h.Component)
}

// errorMiddleware recovers panics and renders errors as {"error": message} before the request
// logger sees the response.
func errorMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			domainErr := apperrors.ToDomainError(err)
			metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
			if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
				logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
			}
			err = c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Message})
		}()
		return c.Next()
	}
}
