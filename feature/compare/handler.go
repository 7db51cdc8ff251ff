package compare

import (
	"bytes"
	"errors"

	"table-compare/core/logger"
	"table-compare/core/source"
	"table-compare/core/tablediff"
	"table-compare/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparison sessions.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCreate)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleDelete)
	group.Get("/:id/fields", h.HandleGetFields)
	group.Put("/:id/fields", h.HandleSetFields)
	group.Post("/:id/decisions", h.HandleDecide)
	group.Post("/:id/decisions/all", h.HandleDecideAll)
	group.Get("/:id/export", h.HandleExport)
	group.Post("/:id/export", h.HandleUpload)
}

// statusFor maps service errors to HTTP status codes. IO and source
// failures fall through to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, source.ErrFileDenied),
		errors.Is(err, tablediff.ErrInvalidJoinField),
		errors.Is(err, tablediff.ErrNoFields):
		return fiber.StatusBadRequest
	case errors.Is(err, tablediff.ErrNoData):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err), zap.Int("status", status))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func (h *Handler) parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errors.Join(ErrInvalidRequest, err)
	}
	return nil
}

func filterQuery(c *fiber.Ctx) (tablediff.FilterState, error) {
	f, err := tablediff.ParseFilter(c.Query("show"))
	if err != nil {
		return f, errors.Join(ErrInvalidRequest, err)
	}
	return f, nil
}

// HandleCreate compares two datasets and opens a session.
// @Summary Compare Datasets
// @Description Opens both datasets, classifies every record as Added, Deleted, Modified or Unchanged and returns the new session.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Datasets and comparison settings"
// @Success 201 {object} SessionView
// @Failure 400 {object} map[string]string "Invalid request or join field"
// @Failure 500 {object} map[string]string "Dataset source failure"
// @Router /compare [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CompareRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, "Invalid compare request", err)
	}

	sess, err := h.service.Create(c.Context(), &req)
	if err != nil {
		return h.fail(c, "Compare failed", err)
	}

	view, err := h.service.View(sess.ID, tablediff.ShowAll())
	if err != nil {
		return h.fail(c, "Compare failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleGet returns a session report.
// @Summary Get Comparison
// @Description Returns the report of a session. Rows are numbered after filtering.
// @Tags compare
// @Produce json
// @Param id path string true "Session ID"
// @Param show query string false "Comma separated statuses to show (added,deleted,modified,unchanged)"
// @Param summary query boolean false "Omit the records"
// @Success 200 {object} SessionView
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /compare/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	filter, err := filterQuery(c)
	if err != nil {
		return h.fail(c, "Invalid filter", err)
	}
	view, err := h.service.View(c.Params("id"), filter)
	if err != nil {
		return h.fail(c, "Get comparison failed", err)
	}
	if utils.ToBool(c.Query("summary")) {
		view.Records = nil
	}
	return c.JSON(view)
}

// HandleDelete closes a session.
// @Summary Delete Comparison
// @Tags compare
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} map[string]string "Session not found"
// @Router /compare/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if !h.service.Delete(c.Params("id")) {
		return h.fail(c, "Delete comparison failed", ErrSessionNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetFields returns the fields, join candidates and significant selection.
// @Summary Get Fields
// @Tags compare
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} FieldsView
// @Failure 404 {object} map[string]string "Session not found"
// @Router /compare/{id}/fields [get]
func (h *Handler) HandleGetFields(c *fiber.Ctx) error {
	view, err := h.service.Fields(c.Params("id"))
	if err != nil {
		return h.fail(c, "Get fields failed", err)
	}
	return c.JSON(view)
}

// HandleSetFields changes the significant fields and re-runs the comparison.
// @Summary Set Significant Fields
// @Description Replaces the significant fields (and optionally the join field) and re-runs the comparison. Decisions are reset.
// @Tags compare
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body FieldsRequest true "Field selection"
// @Success 200 {object} FieldsView
// @Failure 400 {object} map[string]string "Invalid request or join field"
// @Failure 404 {object} map[string]string "Session not found"
// @Router /compare/{id}/fields [put]
func (h *Handler) HandleSetFields(c *fiber.Ctx) error {
	var req FieldsRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, "Invalid fields request", err)
	}
	view, err := h.service.SetFields(c.Context(), c.Params("id"), &req)
	if err != nil {
		return h.fail(c, "Set fields failed", err)
	}
	return c.JSON(view)
}

// HandleDecide accepts, rejects or resets individual records.
// @Summary Decide Records
// @Description Only Added and Modified records take a decision; other keys are ignored.
// @Tags compare
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body DecisionRequest true "Keys and decision"
// @Success 200 {object} DecisionResult
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No data"
// @Router /compare/{id}/decisions [post]
func (h *Handler) HandleDecide(c *fiber.Ctx) error {
	var req DecisionRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, "Invalid decision request", err)
	}
	res, err := h.service.Decide(c.Params("id"), &req)
	if err != nil {
		return h.fail(c, "Decision failed", err)
	}
	return c.JSON(res)
}

// HandleDecideAll applies one decision to every Added and/or Modified record.
// @Summary Decide All Records
// @Tags compare
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body DecisionAllRequest true "Statuses and decision"
// @Success 200 {object} DecisionResult
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No data"
// @Router /compare/{id}/decisions/all [post]
func (h *Handler) HandleDecideAll(c *fiber.Ctx) error {
	var req DecisionAllRequest
	if err := h.parseBody(c, &req); err != nil {
		return h.fail(c, "Invalid decision request", err)
	}
	res, err := h.service.DecideAll(c.Params("id"), &req)
	if err != nil {
		return h.fail(c, "Decision failed", err)
	}
	return c.JSON(res)
}

// HandleExport downloads the decision-resolved CSV export.
// @Summary Download Export
// @Description Rejected changes export their old value. Header: Status, fields..., Decision.
// @Tags compare
// @Produce text/csv
// @Param id path string true "Session ID"
// @Param show query string false "Comma separated statuses to export"
// @Success 200 {string} string "CSV"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No data"
// @Router /compare/{id}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	filter, err := filterQuery(c)
	if err != nil {
		return h.fail(c, "Invalid filter", err)
	}

	var buf bytes.Buffer
	id := c.Params("id")
	if err := h.service.Export(id, filter, &buf); err != nil {
		return h.fail(c, "Export failed", err)
	}

	c.Attachment(id + ".csv")
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// HandleUpload stores the export in the storage bucket.
// @Summary Upload Export
// @Tags compare
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ExportRequest false "Object name and filter"
// @Success 201 {object} ExportResult
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "No data"
// @Failure 500 {object} map[string]string "Upload failed"
// @Router /compare/{id}/export [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	var req ExportRequest
	if len(c.Body()) > 0 {
		if err := h.parseBody(c, &req); err != nil {
			return h.fail(c, "Invalid export request", err)
		}
	}
	res, err := h.service.Upload(c.Context(), c.Params("id"), &req)
	if err != nil {
		return h.fail(c, "Upload failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
