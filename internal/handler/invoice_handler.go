package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bookshop/internal/model"
	"bookshop/internal/service"
)

// InvoiceHandler handles order endpoints.
type InvoiceHandler struct {
	svc service.InvoiceService
}

// NewInvoiceHandler creates a handler layer.
func NewInvoiceHandler(svc service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

// InvoiceItemRequest references a product and quantity for a line item.
type InvoiceItemRequest struct {
	ProductID uint `json:"product" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// CreateInvoiceRequest represents an invoice creation payload.
type CreateInvoiceRequest struct {
	Customer model.Customer       `json:"customer" validate:"required"`
	Items    []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes    string               `json:"notes"`
}

// UpdateInvoiceRequest represents a partial invoice update.
type UpdateInvoiceRequest struct {
	Customer *model.Customer `json:"customer"`
	Status   string          `json:"status"`
	Notes    *string         `json:"notes"`
}

// List godoc
// @Summary List all invoices
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /invoice/list-invoice [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	invoices, err := h.svc.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "List all invoice", Data: invoices})
}

// Create godoc
// @Summary Create an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateInvoiceRequest true "Invoice payload"
// @Success 201 {object} DataResponse
// @Failure 400 {object} map[string]string
// @Router /invoice/create-invoice [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]service.InvoiceItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.InvoiceItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	invoice, err := h.svc.Create(c.Request().Context(), service.InvoiceInput{
		Customer: req.Customer,
		Items:    items,
		Notes:    req.Notes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "Create invoice success", Data: invoice})
}

// Detail godoc
// @Summary Get invoice by id
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /invoice/detail-invoice/{id} [get]
func (h *InvoiceHandler) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	invoice, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Get invoice by id success", Data: invoice})
}

// Update godoc
// @Summary Update invoice status, customer or notes
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Param request body UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /invoice/update-invoice/{id} [patch]
func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	invoice, err := h.svc.Update(c.Request().Context(), id, service.UpdateInvoiceInput{
		Customer: req.Customer,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Update invoice success", Data: invoice})
}

// Delete godoc
// @Summary Delete an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /invoice/delete-invoice/{id} [delete]
func (h *InvoiceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Delete invoice success"})
}
