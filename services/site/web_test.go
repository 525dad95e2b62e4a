package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/funkyshop/storefront/lib/mylog"
)

func TestSitePages(t *testing.T) {
	router := mux.NewRouter()
	NewService(mylog.New("site")).RegisterEndpoints(context.TODO(), router)

	t.Run("Home page", func(t *testing.T) {
		response := doGet(router, "/")
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), "Welcome to Shopping Paradise")
		assert.Contains(t, response.Body.String(), `href="/shopping"`)
	})

	t.Run("Every static page renders", func(t *testing.T) {
		for path := range pages {
			response := doGet(router, path)
			assert.Equal(t, 200, response.Code, path)
		}
	})

	t.Run("Unknown page gives 404", func(t *testing.T) {
		response := doGet(router, "/does-not-exist")
		assert.Equal(t, 404, response.Code)
		assert.Contains(t, response.Body.String(), "404 - Page Not Found")
	})
}

func doGet(router *mux.Router, path string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	return response
}
