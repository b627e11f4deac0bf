package structure

import (
	"structure-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for structure reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the structure routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/structure")
	group.Get("/", h.HandleExport)
	group.Post("/diff", h.HandleDiff)
	group.Post("/apply", h.HandleApply)
}

// HandleExport returns the current structure as a snapshot document.
// @Summary Export Structure
// @Description Dump the current areas, categories and attribute definitions as a snapshot.
// @Tags structure
// @Produce json
// @Success 200 {object} models.Snapshot "Current structure"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /structure [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.Export(c.Context())
	if err != nil {
		l.Error("Structure export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(snap)
}

// HandleDiff plans a reconciliation without applying it.
// @Summary Plan Reconciliation
// @Description Reconcile a submitted snapshot against the database and return the operation plan.
// @Tags structure
// @Accept json
// @Produce json
// @Param snapshot body models.Snapshot true "Submitted snapshot"
// @Success 200 {object} Plan "Operation plan"
// @Failure 400 {object} map[string]string "Invalid snapshot"
// @Router /structure/diff [post]
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, err := h.service.Plan(c.Context(), c.Body())
	if err != nil {
		l.Error("Reconciliation planning failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(plan)
}

// HandleApply plans and executes a reconciliation.
// @Summary Apply Reconciliation
// @Description Reconcile a submitted snapshot and execute the resulting operations. Deletions run only with confirm=true.
// @Tags structure
// @Accept json
// @Produce json
// @Param snapshot body models.Snapshot true "Submitted snapshot"
// @Param confirm query bool false "Confirm destructive operations"
// @Success 200 {object} map[string]any "Plan and apply report"
// @Failure 400 {object} map[string]string "Invalid snapshot"
// @Router /structure/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	confirmed := c.QueryBool("confirm")

	plan, report, err := h.service.Apply(c.Context(), c.Body(), confirmed)
	if err != nil {
		l.Error("Reconciliation apply failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"plan":   plan,
		"report": report,
	})
}
