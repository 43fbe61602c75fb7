package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/finalleads"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/labstack/echo/v4"
)

// FinalLeadHandler handles the approved lead pipeline.
type FinalLeadHandler struct {
	leads *finalleads.Service
}

func NewFinalLeadHandler(leads *finalleads.Service) *FinalLeadHandler {
	return &FinalLeadHandler{leads: leads}
}

// List godoc
// @Summary List final leads
// @Tags Final Leads
// @Produce json
// @Param status query string false "Comma-separated statuses"
// @Param priority query string false "Priority"
// @Param assigned_to query string false "Assignee profile ID"
// @Param search query string false "Substring of company, email or industry"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.FinalLeadListResponse
// @Security BearerAuth
// @Router /api/v1/final-leads [get]
func (h *FinalLeadHandler) List(c echo.Context) error {
	filters, err := finalLeadFiltersFromQuery(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.leads.List(c.Request().Context(), filters)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a final lead
// @Tags Final Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.FinalLead
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/final-leads/{id} [get]
func (h *FinalLeadHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	l, err := h.leads.Get(c.Request().Context(), id)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Create godoc
// @Summary Create a final lead manually
// @Tags Final Leads
// @Accept json
// @Produce json
// @Param request body models.CreateFinalLeadRequest true "Lead details"
// @Success 201 {object} domain.FinalLead
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/final-leads [post]
func (h *FinalLeadHandler) Create(c echo.Context) error {
	var req models.CreateFinalLeadRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	s := custommw.SessionFrom(c)
	l, err := h.leads.Create(c.Request().Context(), req, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// Update godoc
// @Summary Update a final lead
// @Tags Final Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.UpdateFinalLeadRequest true "Fields to update"
// @Success 200 {object} domain.FinalLead
// @Security BearerAuth
// @Router /api/v1/final-leads/{id} [patch]
func (h *FinalLeadHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	var req models.UpdateFinalLeadRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	l, err := h.leads.Update(c.Request().Context(), id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Delete godoc
// @Summary Delete a final lead
// @Description Final leads are hard-deleted; the source auto lead is kept
// @Tags Final Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} models.MessageResponse
// @Security BearerAuth
// @Router /api/v1/final-leads/{id} [delete]
func (h *FinalLeadHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	if err := h.leads.Delete(c.Request().Context(), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "final lead deleted"})
}

func finalLeadFiltersFromQuery(c echo.Context) (models.FinalLeadFilters, error) {
	var filters models.FinalLeadFilters

	if v := c.QueryParam("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.Statuses = append(filters.Statuses, domain.LeadStatus(s))
			}
		}
	}
	if v := c.QueryParam("priority"); v != "" {
		p := domain.Priority(v)
		filters.Priority = &p
	}
	if v := c.QueryParam("assigned_to"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filters, err
		}
		filters.AssignedTo = &id
	}
	filters.Search = c.QueryParam("search")
	filters.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filters.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	return filters, nil
}
