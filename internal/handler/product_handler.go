package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bookshop/internal/model"
	"bookshop/internal/pagination"
	"bookshop/internal/repository"
	"bookshop/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a handler layer.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {object} DataResponse
// @Router /products/list-product [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.svc.List(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "List Data Product", Data: products})
}

// ListPage godoc
// @Summary List products with offset pagination
// @Tags products
// @Produce json
// @Param current query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Success 200 {object} PageResponse
// @Failure 400 {object} map[string]string
// @Router /products/list-paginate-product [get]
func (h *ProductHandler) ListPage(c echo.Context) error {
	req, err := pageRequest(c)
	if err != nil {
		return err
	}

	products, total, err := h.svc.ListPage(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, PageResponse{
		Message: "List Data Product",
		Data:    products,
		Meta:    pagination.NewMeta(req, total),
	})
}

// Search godoc
// @Summary Search products by name and price range
// @Tags products
// @Produce json
// @Param name query string false "Case-insensitive name substring"
// @Param minPrice query number false "Inclusive lower price bound"
// @Param maxPrice query number false "Inclusive upper price bound"
// @Success 200 {object} DataResponse
// @Failure 400 {object} map[string]string
// @Router /products/search-product [get]
func (h *ProductHandler) Search(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return err
	}

	products, err := h.svc.Search(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "data search price", Data: products})
}

// Create godoc
// @Summary Create a product with up to 5 images
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Product name"
// @Param price formData number false "Price"
// @Param quantity formData int false "Quantity"
// @Param description formData string false "Description"
// @Param images formData file false "Product images"
// @Success 201 {object} DataResponse
// @Failure 400 {object} map[string]string
// @Router /products/create-product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	input, err := parseProductForm(c)
	if err != nil {
		return err
	}

	product, err := h.svc.Create(c.Request().Context(), input, formImages(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "Product created successfully", Data: product})
}

// Detail godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /products/detail-product/{id} [get]
func (h *ProductHandler) Detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Detail product", Data: product})
}

// Update godoc
// @Summary Update a product, optionally replacing its images
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /products/update-product/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	input, err := parseProductUpdateForm(c)
	if err != nil {
		return err
	}
	replace := c.FormValue("replaceImages") == "true"

	product, err := h.svc.Update(c.Request().Context(), id, input, formImages(c), replace)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Product updated successfully", Data: product})
}

// Delete godoc
// @Summary Delete a product and its stored images
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} map[string]string
// @Router /products/delete-product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Product deleted successfully"})
}

// parseProductFilter builds the search filter from query params. Unparseable
// price bounds are rejected rather than silently ignored.
func parseProductFilter(c echo.Context) (repository.ProductFilter, error) {
	filter := repository.ProductFilter{Name: c.QueryParam("name")}

	if raw := c.QueryParam("minPrice"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return repository.ProductFilter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid minPrice number")
		}
		filter.MinPrice = &min
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return repository.ProductFilter{}, echo.NewHTTPError(http.StatusBadRequest, "invalid maxPrice number")
		}
		filter.MaxPrice = &max
	}
	return filter, nil
}

func parseProductForm(c echo.Context) (service.ProductInput, error) {
	input := service.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Detail: model.ProductDetail{
			Supplier:  c.FormValue("supplier"),
			Publisher: c.FormValue("publisher"),
			CoverForm: c.FormValue("cover_form"),
			Author:    c.FormValue("author"),
		},
	}

	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return service.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid price number")
		}
		input.Price = price
	}
	if raw := c.FormValue("quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			return service.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid quantity number")
		}
		input.Quantity = quantity
	}
	if raw := c.FormValue("categories"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return service.ProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid categories id")
		}
		id := uint(categoryID)
		input.CategoryID = &id
	}
	return input, nil
}

func parseProductUpdateForm(c echo.Context) (service.UpdateProductInput, error) {
	var input service.UpdateProductInput

	if v := c.FormValue("name"); v != "" {
		input.Name = &v
	}
	if v := c.FormValue("description"); v != "" {
		input.Description = &v
	}
	if raw := c.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return service.UpdateProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid price number")
		}
		input.Price = &price
	}
	if raw := c.FormValue("quantity"); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			return service.UpdateProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid quantity number")
		}
		input.Quantity = &quantity
	}
	if raw := c.FormValue("categories"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return service.UpdateProductInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid categories id")
		}
		id := uint(categoryID)
		input.CategoryID = &id
	}

	detail := model.ProductDetail{
		Supplier:  c.FormValue("supplier"),
		Publisher: c.FormValue("publisher"),
		CoverForm: c.FormValue("cover_form"),
		Author:    c.FormValue("author"),
	}
	if detail != (model.ProductDetail{}) {
		input.Detail = &detail
	}
	return input, nil
}

func formImages(c echo.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}
