package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/regions"
	"github.com/labstack/echo/v4"
)

// RegionHandler handles region requests.
type RegionHandler struct {
	regions *regions.Service
}

func NewRegionHandler(regions *regions.Service) *RegionHandler {
	return &RegionHandler{regions: regions}
}

// List godoc
// @Summary List regions
// @Tags Regions
// @Produce json
// @Success 200 {array} domain.Region
// @Security BearerAuth
// @Router /api/v1/regions [get]
func (h *RegionHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	out, err := h.regions.List(c.Request().Context(), includeInactive)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create a region
// @Tags Regions
// @Accept json
// @Produce json
// @Param request body models.CreateRegionRequest true "Region details"
// @Success 201 {object} domain.Region
// @Security BearerAuth
// @Router /api/v1/regions [post]
func (h *RegionHandler) Create(c echo.Context) error {
	var req models.CreateRegionRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	r, err := h.regions.Create(c.Request().Context(), req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

// Update godoc
// @Summary Update a region
// @Tags Regions
// @Accept json
// @Produce json
// @Param id path string true "Region ID"
// @Param request body models.UpdateRegionRequest true "Fields to update"
// @Success 200 {object} domain.Region
// @Security BearerAuth
// @Router /api/v1/regions/{id} [patch]
func (h *RegionHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	var req models.UpdateRegionRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	r, err := h.regions.Update(c.Request().Context(), id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Delete godoc
// @Summary Deactivate a region
// @Tags Regions
// @Produce json
// @Param id path string true "Region ID"
// @Success 200 {object} models.MessageResponse
// @Security BearerAuth
// @Router /api/v1/regions/{id} [delete]
func (h *RegionHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	if err := h.regions.Delete(c.Request().Context(), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "region deactivated"})
}
