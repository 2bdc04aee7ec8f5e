package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func newSwaggerEngine(cfg config.SwaggerConfig, authenticate gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/*any", SwaggerProtection(cfg, authenticate), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return r
}

func performFrom(r http.Handler, remoteAddr string, headers map[string]string) int {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection_Disabled(t *testing.T) {
	r := newSwaggerEngine(config.SwaggerConfig{Enabled: false}, nil)
	assert.Equal(t, http.StatusNotFound, performFrom(r, "127.0.0.1:5000", nil))
}

func TestSwaggerProtection_IPAllowList(t *testing.T) {
	r := newSwaggerEngine(config.SwaggerConfig{
		Enabled:    true,
		AllowedIPs: []string{"10.1.0.0/16", "192.168.1.7", "not-an-ip"},
	}, nil)

	assert.Equal(t, http.StatusOK, performFrom(r, "10.1.44.3:5000", nil))
	assert.Equal(t, http.StatusOK, performFrom(r, "192.168.1.7:5000", nil))
	assert.Equal(t, http.StatusForbidden, performFrom(r, "192.168.1.8:5000", nil))
}

func TestSwaggerProtection_RequireAuth(t *testing.T) {
	v := newVerifier()
	r := newSwaggerEngine(config.SwaggerConfig{Enabled: true, RequireAuth: true},
		Authenticate(AuthConfig{Verifier: v}))

	assert.Equal(t, http.StatusUnauthorized, performFrom(r, "127.0.0.1:5000", nil))
	assert.Equal(t, http.StatusOK, performFrom(r, "127.0.0.1:5000", bearer(t, v, "dev", time.Hour)))
}

func TestIPAllowList(t *testing.T) {
	list := newIPAllowList([]string{" 2001:db8::/32 ", "127.0.0.1"})
	assert.Len(t, list.nets, 1)
	assert.Len(t, list.ips, 1)
	assert.False(t, list.allows(nil))
}
