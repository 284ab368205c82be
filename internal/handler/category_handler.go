package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshop/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc service.CategoryService
}

// NewCategoryHandler creates a handler layer.
func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// CategoryRequest represents a category create/update payload.
type CategoryRequest struct {
	Name        string `json:"name"`
	ParentID    *uint  `json:"sub_category"`
	Description string `json:"description"`
	Status      *int   `json:"status"`
}

// List godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {object} DataResponse
// @Router /category/list-category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.svc.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "List Data Category", Data: categories})
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category payload"
// @Success 201 {object} DataResponse
// @Failure 400 {object} map[string]string
// @Router /category/create-category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.svc.Create(c.Request().Context(), service.CategoryInput{
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "create category success", Data: category})
}

// Detail godoc
// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /category/detail-category/{id} [get]
func (h *CategoryHandler) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	category, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "detail category success", Data: category})
}

// Update godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryRequest true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /category/update-category/{id} [patch]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	category, err := h.svc.Update(c.Request().Context(), id, service.CategoryInput{
		Name:        req.Name,
		ParentID:    req.ParentID,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "update category success", Data: category})
}

// Delete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /category/delete-category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "delete category success"})
}
