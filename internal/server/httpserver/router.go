package httpserver

import (
	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. The full API lives under
// /api/users; /api/auth carries a read/create subset of it.
func NewRouter(h *Handler, logger logging.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, common.AuthorizationHeaderName, common.RequestIDHeaderName)
	corsConfig.ExposeHeaders = []string{common.RequestIDHeaderName}

	router.Use(requestLogger(logger), gin.Recovery(), cors.New(corsConfig))

	router.GET("/health", h.Health)

	users := router.Group("/api/users")
	{
		users.GET("/get-users", h.ListUsers)
		users.POST("/register-user", h.Register)
		users.POST("/login", h.Login)
		users.POST("/active-Deactive-User-by-id", h.SetStatus)
		users.GET("/get-user-by-id/:id", h.GetByID)
		users.GET("/get-user-by-email/:email", h.GetByEmail)
		users.GET("/get-user-by-mobile/:mobile", h.GetByMobile)
		users.PUT("/update-user/:id", h.Update)
		users.DELETE("/delete-user/:id", h.Delete)
		users.GET("/me", h.Me)
		users.POST("/export-users", h.Export)
	}

	authGroup := router.Group("/api/auth")
	{
		authGroup.GET("/get-users", h.ListUsers)
		authGroup.POST("/register-user", h.Register)
	}

	return router
}
