package routes

import (
	"github.com/aurelshop/aurel-api/controllers"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.SendPasswordResetLink)
		auth.PUT("/reset-password/:token", controllers.ResetPassword)
	}
}
