package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsForQuery(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestPageParamsDefaults(t *testing.T) {
	page, size := pageParams(paramsForQuery(t, ""))
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)
}

func TestPageParamsClamping(t *testing.T) {
	page, size := pageParams(paramsForQuery(t, "page=-3&limit=9999"))
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageSize, size)

	page, size = pageParams(paramsForQuery(t, "page=4&limit=10"))
	assert.Equal(t, 4, page)
	assert.Equal(t, 10, size)
}

func TestSkipTake(t *testing.T) {
	skip, take := skipTake(paramsForQuery(t, "page=3&limit=25"))
	assert.Equal(t, 50, skip)
	assert.Equal(t, 25, take)
}

func TestCreatePaginatedResponse(t *testing.T) {
	c := paramsForQuery(t, "page=2&limit=10")
	resp := CreatePaginatedResponse(c, []string{"a"}, 25)
	assert.Equal(t, int64(25), resp.TotalRows)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 10, resp.PageSize)

	empty := CreatePaginatedResponse(c, nil, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
