package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/interfaces/http/dto"
)

// SwaggerConfig holds configuration for API documentation protection
type SwaggerConfig struct {
	Enabled    bool     // Whether the docs endpoint is served
	AllowedIPs []string // IP whitelist (CIDR notation supported, empty = allow all)
}

// SwaggerProtection guards the documentation endpoint. Disabled docs
// answer 404 and clients outside AllowedIPs get 403. Session and staff
// checks are chained after it by the router.
func SwaggerProtection(cfg SwaggerConfig) gin.HandlerFunc {
	var allowedNets []*net.IPNet
	var allowedIPs []net.IP
	for _, ipStr := range cfg.AllowedIPs {
		if strings.Contains(ipStr, "/") {
			if _, network, err := net.ParseCIDR(ipStr); err == nil {
				allowedNets = append(allowedNets, network)
			}
			continue
		}
		if ip := net.ParseIP(ipStr); ip != nil {
			allowedIPs = append(allowedIPs, ip)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abortWithError(c, http.StatusNotFound, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}

		if len(cfg.AllowedIPs) > 0 && !isIPAllowed(net.ParseIP(c.ClientIP()), allowedIPs, allowedNets) {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Access to API documentation is restricted")
			return
		}
		c.Next()
	}
}

// isIPAllowed checks if the given IP is in the allowed list
func isIPAllowed(ip net.IP, allowedIPs []net.IP, allowedNets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowedIP := range allowedIPs {
		if allowedIP.Equal(ip) {
			return true
		}
	}
	for _, network := range allowedNets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
