package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/parking-app/controllers"
	"github.com/yeremiapane/parking-app/utils"
)

// AdminOnly membatasi akses ke endpoint pengelolaan (slot, dashboard, clear)
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			c.Abort()
			return
		}

		if userRole != "admin" {
			utils.RespondError(c, http.StatusForbidden, controllers.ErrNoPermission)
			c.Abort()
			return
		}

		c.Next()
	}
}
