package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/tags"
	"github.com/labstack/echo/v4"
)

// TagHandler handles lead tag requests.
type TagHandler struct {
	tags *tags.Service
}

func NewTagHandler(tags *tags.Service) *TagHandler {
	return &TagHandler{tags: tags}
}

// List godoc
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {array} domain.LeadTag
// @Security BearerAuth
// @Router /api/v1/tags [get]
func (h *TagHandler) List(c echo.Context) error {
	out, err := h.tags.List(c.Request().Context())
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create godoc
// @Summary Create a tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param request body models.CreateTagRequest true "Tag details"
// @Success 201 {object} domain.LeadTag
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req models.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	s := custommw.SessionFrom(c)
	tag, err := h.tags.Create(c.Request().Context(), req, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// Delete godoc
// @Summary Delete a tag
// @Tags Tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} models.MessageResponse
// @Security BearerAuth
// @Router /api/v1/tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	if err := h.tags.Delete(c.Request().Context(), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "tag deleted"})
}
