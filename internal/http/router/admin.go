package router

import (
	"github.com/gin-gonic/gin"

	"orghub.app/api-server/internal/http/handler"
)

func AdminRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.POST("/login", h.Login)
}
