package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	"github.com/jordanlanch/leadcrm/pkg/audit"
	"github.com/jordanlanch/leadcrm/pkg/domain"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/labstack/echo/v4"
)

// ActivityHandler exposes the activity log. Admin-only.
type ActivityHandler struct {
	audit *audit.Service
}

func NewActivityHandler(audit *audit.Service) *ActivityHandler {
	return &ActivityHandler{audit: audit}
}

// List godoc
// @Summary List activity logs
// @Tags Activity
// @Produce json
// @Param user_id query string false "Filter by actor"
// @Param activity_type query string false "Filter by activity type"
// @Param entity_type query string false "Filter by entity type"
// @Param from query string false "RFC 3339 lower bound"
// @Param to query string false "RFC 3339 upper bound"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} models.ActivityListResponse
// @Security BearerAuth
// @Router /api/v1/activity [get]
func (h *ActivityHandler) List(c echo.Context) error {
	var filters models.ActivityFilters

	if v := c.QueryParam("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return apierrors.BindError(c)
		}
		filters.UserID = &id
	}
	if v := c.QueryParam("activity_type"); v != "" {
		at := domain.ActivityType(v)
		filters.ActivityType = &at
	}
	filters.EntityType = c.QueryParam("entity_type")
	if v := c.QueryParam("from"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return apierrors.BindError(c)
		}
		filters.From = &ts
	}
	if v := c.QueryParam("to"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return apierrors.BindError(c)
		}
		filters.To = &ts
	}
	filters.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filters.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	resp, err := h.audit.List(c.Request().Context(), filters)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
