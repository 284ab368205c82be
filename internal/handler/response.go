package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "bookshop/internal/errors"
	"bookshop/internal/pagination"
)

// DataResponse is the common success envelope.
type DataResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse is the envelope for paginated listings.
type PageResponse struct {
	Message string          `json:"message"`
	Data    interface{}     `json:"data"`
	Meta    pagination.Meta `json:"meta"`
}

// toHTTPError translates a domain error into an echo HTTP error.
func toHTTPError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.Message)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// pageRequest parses ?current and ?pageSize.
func pageRequest(c echo.Context) (pagination.Request, error) {
	req, err := pagination.ParseRequest(c.QueryParam("current"), c.QueryParam("pageSize"))
	if err != nil {
		return pagination.Request{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}
