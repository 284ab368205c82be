package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshop/internal/pagination"
	"bookshop/internal/repository"
)

func queryContext(query url.Values) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/?"+query.Encode(), nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestParseProductFilter(t *testing.T) {
	t.Run("full filter", func(t *testing.T) {
		c := queryContext(url.Values{
			"name":     {"dune"},
			"minPrice": {"10"},
			"maxPrice": {"20.5"},
		})

		filter, err := parseProductFilter(c)
		require.NoError(t, err)
		assert.Equal(t, "dune", filter.Name)
		require.NotNil(t, filter.MinPrice)
		require.NotNil(t, filter.MaxPrice)
		assert.Equal(t, 10.0, *filter.MinPrice)
		assert.Equal(t, 20.5, *filter.MaxPrice)
	})

	t.Run("absent params impose no bounds", func(t *testing.T) {
		filter, err := parseProductFilter(queryContext(url.Values{}))
		require.NoError(t, err)
		assert.Equal(t, repository.ProductFilter{}, filter)
	})

	t.Run("unparseable bounds rejected", func(t *testing.T) {
		for _, query := range []url.Values{
			{"minPrice": {"cheap"}},
			{"maxPrice": {"expensive"}},
		} {
			_, err := parseProductFilter(queryContext(query))
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		}
	})
}

func TestPageRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req, err := pageRequest(queryContext(url.Values{}))
		require.NoError(t, err)
		assert.Equal(t, pagination.Request{Current: 1, PageSize: 10}, req)
	})

	t.Run("explicit page", func(t *testing.T) {
		req, err := pageRequest(queryContext(url.Values{"current": {"2"}, "pageSize": {"4"}}))
		require.NoError(t, err)
		assert.Equal(t, pagination.Request{Current: 2, PageSize: 4}, req)
	})

	t.Run("invalid params rejected with 400", func(t *testing.T) {
		for _, query := range []url.Values{
			{"current": {"first"}},
			{"current": {"0"}},
			{"pageSize": {"-5"}},
		} {
			_, err := pageRequest(queryContext(query))
			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		}
	})
}

func TestPathID(t *testing.T) {
	newContext := func(id string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := echo.New().NewContext(req, httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c
	}

	id, err := pathID(newContext("42"))
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"abc", "-1", ""} {
		_, err := pathID(newContext(raw))
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr, "id %q", raw)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	}
}
