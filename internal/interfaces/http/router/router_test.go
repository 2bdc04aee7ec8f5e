package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	locations := NewDomainGroup("locations", "/locations")
	locations.GET("/:id", "getLocation", func(c *gin.Context) {
		c.String(http.StatusOK, "location "+c.Param("id"))
	})
	locations.DELETE("/:id", "deleteLocation", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	NewRouter(engine).Register(locations).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/locations/abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "location abc", w.Body.String())
	assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodDelete, "/api/v1/locations/abc").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/locations/abc").Code)
}

func TestRouterMiddlewareScope(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	movements := NewDomainGroup("movements", "/movements")
	movements.GET("", "listMovements", func(c *gin.Context) { c.Status(http.StatusOK) })
	NewRouter(engine, WithMiddleware(deny)).Register(movements).Setup()

	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/movements").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/health").Code)
}

func TestDomainGroup_SubgroupMiddleware(t *testing.T) {
	engine := gin.New()
	var seen []string
	stores := NewDomainGroup("stores", "/stores/:storeId").Use(func(c *gin.Context) {
		seen = append(seen, c.Param("storeId"))
	})
	stores.GET("/stats", "getStats", func(c *gin.Context) { c.Status(http.StatusOK) })
	stores.Group("store-locations", "/locations").
		POST("", "createLocation", func(c *gin.Context) { c.Status(http.StatusCreated) })

	NewRouter(engine).Register(stores).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/stores/s1/stats").Code)
	assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/stores/s2/locations").Code)
	assert.Equal(t, []string{"s1", "s2"}, seen)
}

func TestDomainGroup_Routes(t *testing.T) {
	noop := func(*gin.Context) {}
	locations := NewDomainGroup("locations", "/locations")
	locations.GET("/:id", "getLocation", noop)
	locations.Group("location-items", "/:id/items").
		PUT("/thresholds", "setThresholds", noop).
		GET("", "getItemByKey", noop)

	routes := locations.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, Route{Method: http.MethodGet, Path: "/locations/:id", Operation: "getLocation"}, stripHandlers(routes[0]))
	assert.Equal(t, "/locations/:id/items/thresholds", routes[1].Path)
	assert.Equal(t, "/locations/:id/items", routes[2].Path)
	assert.Equal(t, "location-items", locations.subgroups[0].Name())
	assert.Equal(t, "/:id/items", locations.subgroups[0].Prefix())
}

func stripHandlers(r Route) Route {
	r.handlers = nil
	return r
}
