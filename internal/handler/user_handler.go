package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshop/internal/model"
	"bookshop/internal/pagination"
	"bookshop/internal/service"
)

// UserHandler handles admin-facing user management endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest represents an admin user-creation request.
type CreateUserRequest struct {
	Username string        `json:"username" validate:"required"`
	Email    string        `json:"email" validate:"required"`
	Password string        `json:"password" validate:"required,min=6"`
	Phone    string        `json:"phone"`
	Role     string        `json:"role"`
	Profile  model.Profile `json:"profile"`
}

// UpdateUserRequest represents a partial user update.
type UpdateUserRequest struct {
	Username string         `json:"username"`
	Phone    string         `json:"phone"`
	Role     string         `json:"role"`
	Password string         `json:"password"`
	Profile  *model.Profile `json:"profile"`
}

// List godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /users/list-user [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "List Data User", Data: users})
}

// ListPage godoc
// @Summary List users with offset pagination
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param current query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} PageResponse
// @Failure 400 {object} map[string]string
// @Router /users/list-paginate-user [get]
func (h *UserHandler) ListPage(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	users, total, err := h.svc.ListPage(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, PageResponse{
		Message: "List Data User",
		Data:    users,
		Meta:    pagination.NewMeta(req, total),
	})
}

// Create godoc
// @Summary Create a user as admin
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} DataResponse
// @Failure 400 {object} map[string]string
// @Router /users/create-user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.Create(c.Request().Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
		Profile:  req.Profile,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "Create User Success", Data: user})
}

// Detail godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /users/detail-user/{id} [get]
func (h *UserHandler) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Detail User", Data: user})
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /users/update-user/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.Update(c.Request().Context(), id, service.UpdateUserInput{
		Username: req.Username,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
		Profile:  req.Profile,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Update User Success", Data: user})
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /users/delete-user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Delete User Success"})
}
