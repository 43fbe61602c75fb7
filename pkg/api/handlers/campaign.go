package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/campaigns"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/labstack/echo/v4"
)

// CampaignHandler handles campaign requests.
type CampaignHandler struct {
	campaigns *campaigns.Service
}

func NewCampaignHandler(campaigns *campaigns.Service) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

// List godoc
// @Summary List campaigns
// @Tags Campaigns
// @Produce json
// @Success 200 {array} domain.Campaign
// @Security BearerAuth
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	out, err := h.campaigns.List(c.Request().Context())
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a campaign
// @Tags Campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} domain.Campaign
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	out, err := h.campaigns.Get(c.Request().Context(), id)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create a campaign
// @Description Keywords are snapshotted from the product at creation time
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param request body models.CreateCampaignRequest true "Campaign details"
// @Success 201 {object} domain.Campaign
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) Create(c echo.Context) error {
	var req models.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	s := custommw.SessionFrom(c)
	out, err := h.campaigns.Create(c.Request().Context(), req, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

// Update godoc
// @Summary Update a campaign
// @Tags Campaigns
// @Accept json
// @Produce json
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Fields to update"
// @Success 200 {object} domain.Campaign
// @Security BearerAuth
// @Router /api/v1/campaigns/{id} [patch]
func (h *CampaignHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	var req models.UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	out, err := h.campaigns.Update(c.Request().Context(), id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete godoc
// @Summary Delete a campaign
// @Description Removes the campaign and its generated auto leads
// @Tags Campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.MessageResponse
// @Security BearerAuth
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	if err := h.campaigns.Delete(c.Request().Context(), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "campaign deleted"})
}

// GenerateLeads godoc
// @Summary Generate leads for a campaign
// @Tags Campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.GenerateLeadsResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/campaigns/{id}/generate [post]
func (h *CampaignHandler) GenerateLeads(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	s := custommw.SessionFrom(c)
	out, err := h.campaigns.GenerateLeads(c.Request().Context(), id, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
