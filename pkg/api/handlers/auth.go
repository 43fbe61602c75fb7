package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/auth"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/users"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication requests.
type AuthHandler struct {
	users     *users.Service
	jwtSecret string
}

func NewAuthHandler(users *users.Service, jwtSecret string) *AuthHandler {
	return &AuthHandler{users: users, jwtSecret: jwtSecret}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email and password, returns a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	resp, err := h.users.Login(c.Request().Context(), req, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Log out
// @Description Revoke the current token
// @Tags Auth
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Security BearerAuth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	s := custommw.SessionFrom(c)
	if s == nil {
		return apierrors.Unauthorized(c, "Authentication required")
	}

	claims, err := auth.ValidateJWT(s.Token, h.jwtSecret)
	if err != nil {
		return apierrors.Unauthorized(c, "Invalid token")
	}

	if err := h.users.Logout(c.Request().Context(), s.Token, claims, c.RealIP(), c.Request().UserAgent()); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "logged out"})
}

// Me godoc
// @Summary Current profile
// @Description Returns the authenticated profile and its allowed sections
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	s := custommw.SessionFrom(c)
	if s == nil {
		return apierrors.Unauthorized(c, "Authentication required")
	}

	profile, err := h.users.Get(c.Request().Context(), s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"user":     profile,
		"sections": s.AllowedSections(),
	})
}
