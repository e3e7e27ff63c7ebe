package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
)

// MenuController is a read-only view of the catalog; catalog CRUD lives in
// the menu service.
type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB.Order("category asc, name asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.DefaultQuery("available_only", "true") == "true" {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, apperr.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}
