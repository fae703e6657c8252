package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"orghub.app/api-server/internal/http/handler"
)

type Handlers struct {
	Organization *handler.OrganizationHandler
	Document     *handler.DocumentHandler
	Auth         *handler.AuthHandler
	RequireAuth  gin.HandlerFunc
}

// New assembles the gin engine with CORS, tracing, and all routes.
func New(h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware("orghub-api-server"))
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	org := engine.Group("/org")
	OrganizationRouter(org, h.Organization, h.RequireAuth)
	DocumentRouter(org, h.Document, h.RequireAuth)

	admin := engine.Group("/admin")
	AdminRouter(admin, h.Auth)

	return engine
}
