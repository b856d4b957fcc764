package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kasuwa-shop/internal/http/response"
	"github.com/kasuwa-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 1, 20},
		{-3, 50, 1, 50},
		{2, 500, 2, 100},
		{4, -1, 4, 20},
	}
	for _, tc := range cases {
		page, size := NormalizePagination(tc.page, tc.size)
		assert.Equal(t, tc.wantPage, page)
		assert.Equal(t, tc.wantSize, size)
	}
}

func TestQueryPagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&page_size=abc", nil)

	page, size := QueryPagination(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, size)
}

func respondMapped(t *testing.T, err error) response.Response {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=en-US", nil)

	RespondMappedError(c, err, ConcatMappedErrors(NotFoundErrorRules, OrderErrorRules), response.CodeInternal, "error.internal")

	require.Equal(t, http.StatusOK, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondMappedErrorMatchesWrappedTarget(t *testing.T) {
	body := respondMapped(t, fmt.Errorf("load order 9: %w", service.ErrOrderNotFound))
	assert.Equal(t, response.CodeNotFound, body.StatusCode)
	assert.Equal(t, "Order not found", body.Msg)

	body = respondMapped(t, service.ErrInvalidTransition)
	assert.Equal(t, response.CodeConflict, body.StatusCode)
}

func TestRespondMappedErrorFallback(t *testing.T) {
	body := respondMapped(t, errors.New("disk on fire"))
	assert.Equal(t, response.CodeInternal, body.StatusCode)
	assert.Equal(t, "Internal server error", body.Msg)
}

func TestConcatMappedErrorsKeepsOrder(t *testing.T) {
	merged := ConcatMappedErrors(NotFoundErrorRules, OrderErrorRules)
	require.Len(t, merged, len(NotFoundErrorRules)+len(OrderErrorRules))
	assert.Equal(t, NotFoundErrorRules[0].Key, merged[0].Key)
	assert.Equal(t, OrderErrorRules[0].Key, merged[len(NotFoundErrorRules)].Key)
}
