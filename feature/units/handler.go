package units

import (
	"errors"
	"time"

	"unit-loader/core/logger"
	"unit-loader/core/unit"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UnitResponse is the JSON view of a unit.
type UnitResponse struct {
	Name        string     `json:"name"`
	Locator     string     `json:"locator"`
	State       string     `json:"state"`
	Fetches     int        `json:"fetches"`
	Declared    bool       `json:"declared"`
	Kind        string     `json:"kind,omitempty"`
	Error       string     `json:"error,omitempty"`
	RequestedAt *time.Time `json:"requested_at,omitempty"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
}

// Handler handles HTTP requests for units.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the units routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/units")
	group.Get("/", h.HandleList)
	group.Get("/:name", h.HandleGet)
	group.Post("/:name/load", h.HandleLoad)
}

// HandleList lists known units.
// @Summary List Units
// @Description Lists units declared by the build manifest and every unit requested so far, with their load state.
// @Tags units
// @Produce json
// @Success 200 {array} UnitResponse
// @Router /units [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list := h.service.Units()
	out := make([]UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, h.toResponse(u))
	}
	return c.JSON(out)
}

// HandleGet returns the state of one unit.
// @Summary Get Unit
// @Description Returns the load state of a unit. Units never requested are reported as not_requested.
// @Tags units
// @Produce json
// @Param name path string true "Unit name"
// @Success 200 {object} UnitResponse
// @Router /units/{name} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	return c.JSON(h.toResponse(h.service.Unit(c.Params("name"))))
}

// HandleLoad loads a unit, waiting for the fetch to settle.
// @Summary Load Unit
// @Description Fetches and executes a unit once. Concurrent and repeated requests share the same outcome; failures are never retried.
// @Tags units
// @Produce json
// @Param name path string true "Unit name"
// @Success 200 {object} UnitResponse "Loaded"
// @Failure 400 {object} map[string]string "Empty unit name"
// @Failure 404 {object} UnitResponse "Resource not found"
// @Failure 422 {object} UnitResponse "Execution error"
// @Failure 502 {object} UnitResponse "Transport error"
// @Router /units/{name}/load [post]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("name")

	err := h.service.Load(c.UserContext(), name)
	if errors.Is(err, unit.ErrEmptyName) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp := h.toResponse(h.service.Unit(name))
	if err == nil {
		l.Debug("Unit load request served", zap.String("unit", name))
		return c.JSON(resp)
	}

	kind := unit.KindOf(err)
	resp.Kind = kind.String()
	resp.Error = err.Error()
	l.Warn("Unit load request failed", zap.String("unit", name), zap.String("kind", kind.String()), zap.Error(err))

	return c.Status(statusFor(kind)).JSON(resp)
}

func statusFor(kind unit.Kind) int {
	switch kind {
	case unit.KindNotFound:
		return fiber.StatusNotFound
	case unit.KindExecution:
		return fiber.StatusUnprocessableEntity
	case unit.KindTransport:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) toResponse(u unit.Unit) UnitResponse {
	resp := UnitResponse{
		Name:     u.Name,
		Locator:  u.Locator,
		State:    u.State.String(),
		Fetches:  u.Fetches,
		Declared: h.service.Known(u.Name),
	}
	if u.Err != nil {
		resp.Kind = u.Err.Kind().String()
		resp.Error = u.Err.Error()
	}
	if !u.RequestedAt.IsZero() {
		t := u.RequestedAt
		resp.RequestedAt = &t
	}
	if !u.SettledAt.IsZero() {
		t := u.SettledAt
		resp.SettledAt = &t
	}
	return resp
}
