package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serveDocs(cfg SwaggerConfig, remoteAddr string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/docs/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	req := httptest.NewRequest(http.MethodGet, "/docs/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled docs are hidden", func(t *testing.T) {
		w := serveDocs(SwaggerConfig{Enabled: false}, "10.0.0.1:1234")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no allowlist admits everyone", func(t *testing.T) {
		w := serveDocs(SwaggerConfig{Enabled: true}, "198.51.100.1:1234")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("allowlist with CIDR", func(t *testing.T) {
		cfg := SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8", "192.168.1.5", "not-an-ip"}}
		assert.Equal(t, http.StatusOK, serveDocs(cfg, "10.2.3.4:1234").Code)
		assert.Equal(t, http.StatusOK, serveDocs(cfg, "192.168.1.5:1234").Code)
		assert.Equal(t, http.StatusForbidden, serveDocs(cfg, "192.168.1.6:1234").Code)
	})
}

func TestIsIPAllowed(t *testing.T) {
	_, network, _ := net.ParseCIDR("2001:db8::/32")
	assert.True(t, isIPAllowed(net.ParseIP("2001:db8::1"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(nil, nil, []*net.IPNet{network}))
}
