package ghosts

import (
	"bytes"
	"errors"

	"descriptor-sync/core/logger"
	"descriptor-sync/core/reconcile"
	"descriptor-sync/core/snapshot"
	"descriptor-sync/feature/ghosts/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for ghosts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ghosts routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ghosts")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/sync", h.HandleSync)
	group.Post("/refresh", h.HandleRefresh)
}

// HandleList returns every live ghost.
// @Summary List Ghosts
// @Description List the live ghosts in the order of the last snapshot.
// @Tags ghosts
// @Produce json
// @Success 200 {array} models.Ghost "Live ghosts"
// @Router /ghosts [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

// HandleGet returns a single live ghost.
// @Summary Get Ghost
// @Tags ghosts
// @Produce json
// @Param id path string true "Ghost ID"
// @Success 200 {object} models.Ghost "Ghost"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /ghosts/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid ghost id"})
	}

	g, ok := h.service.Get(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "ghost not found"})
	}
	return c.JSON(g)
}

// HandleSync reconciles the ghosts with the snapshot in the request body.
// @Summary Sync Ghosts
// @Description Reconcile the live ghosts with a full snapshot. The body format follows Content-Type (json, yaml, toml, msgpack).
// @Tags ghosts
// @Accept json
// @Produce json
// @Param snapshot body snapshot.Document[models.Descriptor] true "Snapshot"
// @Success 200 {object} models.SyncReport "Sync Report"
// @Failure 400 {object} map[string]string "Malformed Snapshot"
// @Failure 409 {object} map[string]string "Duplicate Descriptor"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ghosts/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format, err := snapshot.FormatOfContentType(c.Get(fiber.HeaderContentType))
	if err != nil {
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	}

	var doc snapshot.Document[models.Descriptor]
	if err := snapshot.DecodeFormat(format, bytes.NewReader(c.Body()), &doc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := h.service.Sync(c.UserContext(), doc.Descriptors)
	if err != nil {
		l.Error("Ghost sync request failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	}
	return c.JSON(report)
}

// HandleRefresh reconciles the ghosts with the latest snapshot in storage.
// @Summary Refresh Ghosts
// @Description Drop the cached snapshot, fetch it again from storage and reconcile.
// @Tags ghosts
// @Produce json
// @Success 200 {object} models.SyncReport "Sync Report"
// @Failure 503 {object} map[string]string "No Snapshot Source"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ghosts/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Refresh(c.UserContext())
	if err != nil {
		l.Error("Ghost refresh failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrDuplicateKey):
		return fiber.StatusConflict
	case errors.Is(err, ErrNoSource):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, snapshot.ErrUnsupportedFormat):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
