package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/users"
	"github.com/labstack/echo/v4"
)

// UserHandler handles profile management. All routes are admin-only.
type UserHandler struct {
	users *users.Service
}

func NewUserHandler(users *users.Service) *UserHandler {
	return &UserHandler{users: users}
}

// List godoc
// @Summary List profiles
// @Tags Users
// @Produce json
// @Param include_inactive query bool false "Include deactivated profiles"
// @Success 200 {array} domain.Profile
// @Security BearerAuth
// @Router /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	profiles, err := h.users.List(c.Request().Context(), includeInactive)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// Create godoc
// @Summary Create a profile
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Profile details"
// @Success 201 {object} domain.Profile
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	profile, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, profile)
}

// Update godoc
// @Summary Update a profile
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "Profile ID"
// @Param request body models.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} domain.Profile
// @Security BearerAuth
// @Router /api/v1/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	profile, err := h.users.Update(c.Request().Context(), id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Deactivate godoc
// @Summary Deactivate a profile
// @Tags Users
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} models.MessageResponse
// @Security BearerAuth
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	if err := h.users.Deactivate(c.Request().Context(), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "profile deactivated"})
}
