package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/leads"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/labstack/echo/v4"
)

// AutoLeadHandler handles machine-generated lead requests.
type AutoLeadHandler struct {
	leads *leads.Service
}

func NewAutoLeadHandler(leads *leads.Service) *AutoLeadHandler {
	return &AutoLeadHandler{leads: leads}
}

// List godoc
// @Summary List auto leads
// @Description Filter by campaign, status set, relevance and free-text search
// @Tags Auto Leads
// @Produce json
// @Param campaign_id query string false "Campaign ID"
// @Param status query string false "Comma-separated statuses"
// @Param search query string false "Substring of company, email or industry"
// @Param min_score query number false "Minimum relevance score"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.AutoLeadListResponse
// @Security BearerAuth
// @Router /api/v1/auto-leads [get]
func (h *AutoLeadHandler) List(c echo.Context) error {
	filters, err := leadFiltersFromQuery(c)
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
// @Summary Get an auto lead
// @Tags Auto Leads
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} domain.AutoLead
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/auto-leads/{id} [get]
func (h *AutoLeadHandler) Get(c echo.Context) error {
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

// Update godoc
// @Summary Update an auto lead
// @Description Patch review status and selection
// @Tags Auto Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Param request body models.UpdateAutoLeadRequest true "Fields to update"
// @Success 200 {object} domain.AutoLead
// @Security BearerAuth
// @Router /api/v1/auto-leads/{id} [patch]
func (h *AutoLeadHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	var req models.UpdateAutoLeadRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	l, err := h.leads.Update(c.Request().Context(), id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// Promote godoc
// @Summary Promote auto leads to final leads
// @Description Copies the selected auto leads into the final pipeline.
// Unknown ids are skipped; an already-promoted lead fails the whole batch.
// @Tags Auto Leads
// @Accept json
// @Produce json
// @Param request body models.PromoteLeadsRequest true "Lead IDs"
// @Success 200 {array} domain.FinalLead
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/auto-leads/promote [post]
func (h *AutoLeadHandler) Promote(c echo.Context) error {
	var req models.PromoteLeadsRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	s := custommw.SessionFrom(c)
	created, err := h.leads.Promote(c.Request().Context(), req.LeadIDs, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	if created == nil {
		created = []domain.FinalLead{}
	}
	return c.JSON(http.StatusOK, created)
}

func leadFiltersFromQuery(c echo.Context) (models.LeadFilters, error) {
	var filters models.LeadFilters

	if v := c.QueryParam("campaign_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filters, err
		}
		filters.CampaignID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filters.Statuses = append(filters.Statuses, domain.LeadStatus(s))
			}
		}
	}
	filters.Search = c.QueryParam("search")
	if v := c.QueryParam("min_score"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filters, err
		}
		filters.MinScore = &f
	}
	filters.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filters.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	return filters, nil
}
