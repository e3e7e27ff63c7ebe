package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRoleHas(t *testing.T) {
	assert.True(t, RoleHas("admin", CapSettingsWrite))
	assert.True(t, RoleHas("manager", CapOrdersVoid))
	assert.False(t, RoleHas("manager", CapSettingsWrite))

	assert.True(t, RoleHas("server", CapOrdersWrite))
	assert.False(t, RoleHas("server", CapPaymentsWrite))
	assert.False(t, RoleHas("server", CapOrdersVoid))

	assert.True(t, RoleHas("cashier", CapPaymentsWrite))
	assert.False(t, RoleHas("cashier", CapOrdersWrite))

	assert.True(t, RoleHas("host", CapTablesWrite))
	assert.False(t, RoleHas("host", CapOrdersWrite))

	assert.False(t, RoleHas("dishwasher", CapOrdersRead), "unknown roles get nothing")
}

func TestRequireCapability(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set("role", role)
		})
		r.GET("/guarded", RequireCapability(CapOrdersVoid), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)

	w := httptest.NewRecorder()
	handler("manager").ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler("server").ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireCapabilityWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/guarded", RequireCapability(CapOrdersRead), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
