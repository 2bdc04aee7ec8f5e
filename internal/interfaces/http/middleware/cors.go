package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
)

// ExposedHeaders are readable by browser clients
var ExposedHeaders = []string{RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"}

// CORS builds the gin-contrib/cors middleware from HTTP configuration. With
// no configured origin every cross-origin request is refused.
func CORS(cfg config.HTTPConfig) gin.HandlerFunc {
	allowHeaders := slices.Clone(cfg.CORSAllowHeaders)
	for _, h := range []string{RequestIDHeader, IdempotencyKeyHeader, "Authorization", "Content-Type"} {
		if !slices.Contains(allowHeaders, h) {
			allowHeaders = append(allowHeaders, h)
		}
	}

	c := cors.Config{
		AllowMethods:  cfg.CORSAllowMethods,
		AllowHeaders:  allowHeaders,
		ExposeHeaders: ExposedHeaders,
		MaxAge:        12 * time.Hour,
	}
	switch {
	case slices.Contains(cfg.CORSAllowOrigins, "*"):
		c.AllowAllOrigins = true
	case len(cfg.CORSAllowOrigins) > 0:
		c.AllowOrigins = cfg.CORSAllowOrigins
		c.AllowCredentials = true
	default:
		c.AllowOriginFunc = func(string) bool { return false }
	}
	if len(c.AllowMethods) == 0 {
		c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	return cors.New(c)
}
