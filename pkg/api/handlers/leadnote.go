package handlers

import (
	"net/http"

	"github.com/google/uuid"
	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/leadnote"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/labstack/echo/v4"
)

// LeadNoteHandler handles notes on auto and final leads.
type LeadNoteHandler struct {
	notes *leadnote.Service
}

func NewLeadNoteHandler(notes *leadnote.Service) *LeadNoteHandler {
	return &LeadNoteHandler{notes: notes}
}

// ListForLead godoc
// @Summary List notes on a lead
// @Tags Lead Notes
// @Produce json
// @Param lead_id path string true "Lead ID"
// @Param lead_type query string true "auto or final"
// @Success 200 {array} domain.LeadNote
// @Security BearerAuth
// @Router /api/v1/leads/{lead_id}/notes [get]
func (h *LeadNoteHandler) ListForLead(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("lead_id"))
	if err != nil {
		return apierrors.BindError(c)
	}

	leadType := domain.LeadType(c.QueryParam("lead_type"))
	if leadType != domain.LeadTypeAuto && leadType != domain.LeadTypeFinal {
		return apierrors.ValidationError(c, domain.NewValidationError("lead_type must be auto or final"))
	}

	notes, err := h.notes.ListForLead(c.Request().Context(), leadID, leadType)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, notes)
}

// Create godoc
// @Summary Create a note on a lead
// @Tags Lead Notes
// @Accept json
// @Produce json
// @Param request body models.CreateNoteRequest true "Note details"
// @Success 201 {object} domain.LeadNote
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/lead-notes [post]
func (h *LeadNoteHandler) Create(c echo.Context) error {
	var req models.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	s := custommw.SessionFrom(c)
	n, err := h.notes.Create(c.Request().Context(), req, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, n)
}

// Delete godoc
// @Summary Delete a note
// @Description Only the author or an admin may delete a note
// @Tags Lead Notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/lead-notes/{id} [delete]
func (h *LeadNoteHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	s := custommw.SessionFrom(c)
	n, err := h.notes.Get(c.Request().Context(), id)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	if n.CreatedBy != s.UserID && !s.IsAdmin() {
		return apierrors.Forbidden(c)
	}

	if err := h.notes.Delete(c.Request().Context(), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "note deleted"})
}
