package auth

import (
	"seatflow/internal/shared/identity"
	"seatflow/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	issuer     *identity.TokenIssuer
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, issuer *identity.TokenIssuer) *Router {
	return &Router{
		controller: controller,
		issuer:     issuer,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/refresh", authRouter.controller.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.JWTAuth(authRouter.issuer))
		{
			protected.GET("/me", authRouter.controller.GetMe)
			protected.PUT("/change-password", authRouter.controller.ChangePassword)
		}
	}
}
