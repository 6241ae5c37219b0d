// Package web serves the landing page and runs its forms through the capture controller.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/capture"
	"github.com/spec-kit/launch-watch/internal/page"
	apperrors "github.com/spec-kit/launch-watch/pkg/util/errorutil"
)

//go:embed templates/*.html
var templateFS embed.FS

// Roles offered in the lead form.
var Roles = []string{"investor", "homebuyer", "channel-partner", "developer", "other"}

type componentView struct {
	ID      string
	Kind    page.Kind
	Options string
}

type pageView struct {
	Notification *capture.Notification
	Form         capture.Form
	Button       capture.Button
	Roles        []string
	Components   []componentView
}

// Handler renders the landing page.
type Handler struct {
	controller *capture.Controller
	registry   *page.Registry
	tmpl       *template.Template
	logger     *zap.Logger
}

// NewHandler parses the embedded templates.
func NewHandler(controller *capture.Controller, registry *page.Registry, logger *zap.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{controller: controller, registry: registry, tmpl: tmpl, logger: logger}, nil
}

// Index handles GET /.
func (h *Handler) Index(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, nil, capture.Form{})
}

// Subscribe handles POST /subscribe.
func (h *Handler) Subscribe(c *fiber.Ctx) error {
	form := capture.FormFromValues(formValues(c))
	feedback := h.controller.Submit(c.UserContext(), form)
	if feedback.ResetForm {
		form = capture.Form{}
	}
	return h.respond(c, feedback, form)
}

// Contact handles POST /contact.
func (h *Handler) Contact(c *fiber.Ctx) error {
	feedback := h.controller.SubmitContact(c.UserContext())
	return h.respond(c, feedback, capture.Form{})
}

// Status handles GET /api/capture/status.
func (h *Handler) Status(c *fiber.Ctx) error {
	return c.JSON(h.controller.Button())
}

// Components handles GET /api/components.
func (h *Handler) Components(c *fiber.Ctx) error {
	items := make([]fiber.Map, 0)
	for _, comp := range h.registry.List() {
		items = append(items, componentJSON(comp))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Component handles GET /api/components/:id.
func (h *Handler) Component(c *fiber.Ctx) error {
	comp, ok := h.registry.Get(c.Params("id"))
	if !ok {
		return apperrors.NewNotFound("component")
	}
	return c.JSON(fiber.Map{"data": componentJSON(comp)})
}

func (h *Handler) respond(c *fiber.Ctx, feedback capture.Feedback, form capture.Form) error {
	status := fiber.StatusOK
	if feedback.Notification.Kind == capture.NotificationError {
		status = fiber.StatusBadGateway
	}
	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.Status(status).JSON(fiber.Map{
			"notification": fiber.Map{
				"kind":    feedback.Notification.Kind,
				"message": feedback.Notification.Message,
			},
			"reset":   feedback.ResetForm,
			"outcome": feedback.Result.Outcome.String(),
		})
	}
	n := feedback.Notification
	return h.render(c, status, &n, form)
}

func (h *Handler) render(c *fiber.Ctx, status int, n *capture.Notification, form capture.Form) error {
	view := pageView{
		Notification: n,
		Form:         form,
		Button:       h.controller.Button(),
		Roles:        Roles,
	}
	for _, comp := range h.registry.List() {
		opts, err := json.Marshal(comp.Options())
		if err != nil {
			return err
		}
		view.Components = append(view.Components, componentView{ID: comp.ID(), Kind: comp.Kind(), Options: string(opts)})
	}

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", view); err != nil {
		h.logger.Error("render landing page", zap.Error(err))
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func componentJSON(comp page.Component) fiber.Map {
	return fiber.Map{
		"id":      comp.ID(),
		"kind":    comp.Kind(),
		"options": comp.Options(),
	}
}

func formValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for k, vs := range mf.Value {
			values[k] = append(values[k], vs...)
		}
		return values
	}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}
