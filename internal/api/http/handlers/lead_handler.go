package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/launch-watch/internal/api/dto"
	"github.com/spec-kit/launch-watch/internal/service"
	apperrors "github.com/spec-kit/launch-watch/pkg/util/errorutil"
)

// LeadHandler is the append endpoint.
type LeadHandler struct {
	service *service.LeadService
}

// NewLeadHandler constructs handler.
func NewLeadHandler(leadService *service.LeadService) *LeadHandler {
	return &LeadHandler{service: leadService}
}

// Probe handles GET /leads. It identifies the handler and never touches the sheet.
func (h *LeadHandler) Probe(c *fiber.Ctx) error {
	c.Type("txt", "utf-8")
	return c.SendString(dto.ProbeMessage)
}

// Append handles POST /leads. The body is read as JSON whatever Content-Type the browser sent,
// since opaque-mode requests arrive as text/plain.
func (h *LeadHandler) Append(c *fiber.Ctx) error {
	payload, err := dto.DecodeLeadPayload(c.Body(), c.App().Config().JSONDecoder)
	if err != nil {
		return apperrors.NewInvalidPayload(err)
	}

	if _, err := h.service.Append(c.UserContext(), payload.ToDomain()); err != nil {
		return err
	}

	return c.JSON(dto.AppendResponse{
		Status:  dto.StatusSuccess,
		Message: dto.MessageLeadSaved,
	})
}
