package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/minh261002/Shopee.vn-sub000/internal/infrastructure/config"
	"github.com/minh261002/Shopee.vn-sub000/internal/interfaces/http/dto"
)

// ipAllowList matches client addresses against single IPs and CIDR ranges
type ipAllowList struct {
	ips  []net.IP
	nets []*net.IPNet
}

func newIPAllowList(entries []string) ipAllowList {
	var list ipAllowList
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				list.nets = append(list.nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			list.ips = append(list.ips, ip)
		}
	}
	return list
}

func (l ipAllowList) allows(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range l.ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range l.nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// SwaggerProtection guards the API documentation routes. A disabled endpoint
// answers 404; a non-empty AllowedIPs restricts callers by address; with
// RequireAuth the given authentication middleware must accept the request.
func SwaggerProtection(cfg config.SwaggerConfig, authenticate gin.HandlerFunc) gin.HandlerFunc {
	allowList := newIPAllowList(cfg.AllowedIPs)
	restricted := len(cfg.AllowedIPs) > 0

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound, "API documentation is not available", GetRequestID(c)))
			return
		}

		if restricted && !allowList.allows(clientIP(c)) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Access to API documentation is restricted", GetRequestID(c)))
			return
		}

		if cfg.RequireAuth && authenticate != nil {
			authenticate(c)
			if c.IsAborted() {
				return
			}
		}

		c.Next()
	}
}

// clientIP prefers gin's proxy-aware address and falls back to RemoteAddr.
func clientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}
