package handlers

import (
	"net/http"

	"github.com/jordanlanch/leadcrm/pkg/analytics"
	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard aggregate.
type DashboardHandler struct {
	analytics *analytics.Service
}

func NewDashboardHandler(analytics *analytics.Service) *DashboardHandler {
	return &DashboardHandler{analytics: analytics}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Lead counts, conversion rate, monthly trend, top regions and
// products, recent activity. Cached for a short interval.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Security BearerAuth
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.analytics.DashboardStats(c.Request().Context())
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
