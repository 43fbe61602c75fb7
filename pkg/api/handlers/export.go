package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/export"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/labstack/echo/v4"
)

// ExportHandler builds final lead exports.
type ExportHandler struct {
	exports *export.Service
}

func NewExportHandler(exports *export.Service) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Create godoc
// @Summary Export final leads
// @Description Renders the filtered final leads to CSV or XLSX
// @Tags Exports
// @Accept json
// @Produce json
// @Param request body models.ExportRequest true "Format and filters"
// @Success 201 {object} models.ExportResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/exports [post]
func (h *ExportHandler) Create(c echo.Context) error {
	var req models.ExportRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	s := custommw.SessionFrom(c)
	resp, err := h.exports.Export(c.Request().Context(), req, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}
