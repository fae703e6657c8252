package router

import (
	"github.com/gin-gonic/gin"

	"orghub.app/api-server/internal/http/handler"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler, requireAuth gin.HandlerFunc) {
	rg.POST("/create", h.Create)
	rg.GET("/get", h.Get)
	rg.PUT("/update", requireAuth, h.Update)
	rg.DELETE("/delete", requireAuth, h.Delete)
}

func DocumentRouter(rg *gin.RouterGroup, h *handler.DocumentHandler, requireAuth gin.HandlerFunc) {
	rg.POST("/docs", requireAuth, h.Insert)
	rg.GET("/docs", requireAuth, h.List)
}
