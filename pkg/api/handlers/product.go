package handlers

import (
	"net/http"

	apierrors "github.com/jordanlanch/leadcrm/pkg/api/errors"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/models"
	"github.com/jordanlanch/leadcrm/pkg/products"
	"github.com/labstack/echo/v4"
)

// ProductHandler handles product catalog requests.
type ProductHandler struct {
	products *products.Service
}

func NewProductHandler(products *products.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

// List godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Param include_inactive query bool false "Include deactivated products"
// @Success 200 {array} domain.Product
// @Security BearerAuth
// @Router /api/v1/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	out, err := h.products.List(c.Request().Context(), includeInactive)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	p, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary Create a product
// @Tags Products
// @Accept json
// @Produce json
// @Param request body models.CreateProductRequest true "Product details"
// @Success 201 {object} domain.Product
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	s := custommw.SessionFrom(c)
	p, err := h.products.Create(c.Request().Context(), req, s.UserID)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// Update godoc
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} domain.Product
// @Security BearerAuth
// @Router /api/v1/products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	var req models.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	p, err := h.products.Update(c.Request().Context(), id, req)
	if err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete godoc
// @Summary Deactivate a product
// @Description Products are soft-deleted so campaigns keep their reference
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.MessageResponse
// @Security BearerAuth
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return apierrors.BindError(c)
	}

	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return apierrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "product deactivated"})
}
