package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/api/dto"
	"github.com/spec-kit/launch-watch/internal/observability"
	apperrors "github.com/spec-kit/launch-watch/pkg/util/errorutil"
)

// MiddlewareConfig groups the knobs for global middlewares.
type MiddlewareConfig struct {
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Timeout      time.Duration
	AllowOrigins string
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg.Logger, cfg.Metrics))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders every error, including recovered panics, as the
// {"status":"error","message":...} envelope.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				fields := []zap.Field{
					zap.String("code", domainErr.Code),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()),
					zap.Error(domainErr),
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", fields...)
				} else {
					logger.Warn("request rejected", fields...)
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(dto.AppendResponse{
					Status:  dto.StatusError,
					Message: domainErr.Diagnostic(),
				})
				err = nil
			}
		}()
		return c.Next()
	}
}
