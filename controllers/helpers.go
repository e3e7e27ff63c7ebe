package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pos-engine/apperr"
)

func paramUint(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validationf("%s %q is not a valid id", name, raw)
	}
	return uint(id), nil
}

// actor pulls the authenticated user's id and display name, when present.
func actor(c *gin.Context) (*uint, string) {
	var id *uint
	if v, ok := c.Get("userID"); ok {
		if u, ok := v.(uint); ok {
			id = &u
		}
	}
	name, _ := c.Get("userName")
	nameStr, _ := name.(string)
	return id, nameStr
}
