package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pos-engine/utils"
)

// Capabilities are a closed set resolved from the role at authorization
// time. The table is static configuration, never user-mutable data.
const (
	CapOrdersRead    = "orders:read"
	CapOrdersWrite   = "orders:write"
	CapOrdersVoid    = "orders:void"
	CapPaymentsRead  = "payments:read"
	CapPaymentsWrite = "payments:write"
	CapTablesWrite   = "tables:write"
	CapSettingsWrite = "settings:write"
)

var roleCapabilities = map[string][]string{
	"admin": {
		CapOrdersRead, CapOrdersWrite, CapOrdersVoid,
		CapPaymentsRead, CapPaymentsWrite, CapTablesWrite, CapSettingsWrite,
	},
	"manager": {
		CapOrdersRead, CapOrdersWrite, CapOrdersVoid,
		CapPaymentsRead, CapPaymentsWrite, CapTablesWrite,
	},
	"server": {
		CapOrdersRead, CapOrdersWrite, CapTablesWrite,
	},
	"cashier": {
		CapOrdersRead, CapPaymentsRead, CapPaymentsWrite,
	},
	"host": {
		CapOrdersRead, CapTablesWrite,
	},
}

// RoleHas resolves a capability against the static table.
func RoleHas(role, capability string) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == capability {
			return true
		}
	}
	return false
}

// RequireCapability guards a route group. AuthMiddleware must run first.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		roleStr, ok := role.(string)
		if !ok || !RoleHas(roleStr, capability) {
			c.AbortWithStatusJSON(403, utils.JSONResponse{
				Status:  false,
				Code:    "FORBIDDEN",
				Message: "missing capability " + capability,
			})
			return
		}
		c.Next()
	}
}
