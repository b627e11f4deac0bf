package snapshot

import (
	"io"

	"structure-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for archived snapshots.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the snapshot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/snapshots")
	group.Get("/", h.HandleList)
	group.Get("/*", h.HandleGet)
}

// HandleList returns the archived snapshots.
// @Summary List Snapshots
// @Description List archived snapshot objects, newest last.
// @Tags snapshots
// @Produce json
// @Success 200 {array} Entry "Archived snapshots"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /snapshots [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Snapshot listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if entries == nil {
		entries = []Entry{}
	}

	return c.JSON(entries)
}

// HandleGet streams one archived snapshot.
// @Summary Download Snapshot
// @Description Download an archived snapshot by its object key.
// @Tags snapshots
// @Produce json
// @Param key path string true "Object key (e.g. submitted/2026-08-25T10-00-00Z-1a2b3c4d.json)"
// @Success 200 {object} models.Snapshot "Snapshot document"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /snapshots/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	key := c.Params("*")
	l := logger.WithRayID(h.service.logger, c)

	reader, err := h.service.Get(c.Context(), key)
	if err != nil {
		l.Error("Snapshot download failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		l.Error("Snapshot read failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
