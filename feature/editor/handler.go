package editor

import (
	"structure-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for edit sessions.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the editor routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/editor/sessions")
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Post("/:id/transition", h.HandleTransition)
	group.Delete("/:id", h.HandleDelete)
}

// transitionRequest is the body of a transition call.
type transitionRequest struct {
	// Action is one of: view, edit_mode, edit, add, delete, insert,
	// remove, save, discard, cancel, submit, complete.
	Action string `json:"action"`
	// Tab is required for the operations that target one (edit, add,
	// delete, insert, remove).
	Tab string `json:"tab,omitempty"`
	// Force bypasses the unsaved-changes guard on view.
	Force bool `json:"force,omitempty"`
}

// HandleCreate starts a new edit session.
// @Summary Create Edit Session
// @Description Start a new edit session in viewing mode.
// @Tags editor
// @Produce json
// @Success 201 {object} map[string]any "Session ID and state"
// @Router /editor/sessions [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	id, session := h.store.Create()
	logger.WithRayID(h.logger, c).Info("Edit session created", zap.String("session_id", id))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    id,
		"state": session.State(),
	})
}

// HandleGet returns a session's current state.
// @Summary Get Edit Session
// @Description Get the current state of an edit session.
// @Tags editor
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} State "Session state"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /editor/sessions/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	session, ok := h.store.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}
	return c.JSON(session.State())
}

// HandleTransition applies a state transition to a session.
// @Summary Transition Edit Session
// @Description Apply a state transition (edit_mode, edit, add, delete, insert, remove, save, discard, cancel, submit, complete, view).
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param transition body transitionRequest true "Transition"
// @Success 200 {object} State "Resulting state"
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Blocked by unsaved changes"
// @Router /editor/sessions/{id}/transition [post]
func (h *Handler) HandleTransition(c *fiber.Ctx) error {
	session, ok := h.store.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	}

	var req transitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch req.Action {
	case "view":
		if err := session.SwitchToViewing(req.Force); err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
	case "edit_mode":
		session.SwitchToEditing()
	case "edit":
		session.StartEditing(req.Tab)
	case "add":
		session.StartAdding(req.Tab)
	case "delete":
		session.StartDeleting(req.Tab)
	case "insert":
		session.StartInserting(req.Tab)
	case "remove":
		session.StartRemoving(req.Tab)
	case "save":
		session.SaveChanges()
	case "discard":
		session.DiscardChanges()
	case "cancel":
		session.CancelOperation()
	case "submit":
		session.SubmitForm()
	case "complete":
		session.CompleteOperation()
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown action " + req.Action})
	}

	return c.JSON(session.State())
}

// HandleDelete ends a session.
// @Summary Delete Edit Session
// @Description End an edit session and drop its state.
// @Tags editor
// @Param id path string true "Session ID"
// @Success 204 "Deleted"
// @Router /editor/sessions/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	h.store.Delete(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}
