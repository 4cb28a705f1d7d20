package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

// GetMenu -> GET /menu?category=Drink
func (mc *MenuController) GetMenu(c *gin.Context) {
	items, err := mc.Menu.ListMenu(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}
