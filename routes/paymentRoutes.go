package routes

import (
	"github.com/aurelshop/aurel-api/controllers"
	"github.com/aurelshop/aurel-api/middlewares"
	"github.com/gin-gonic/gin"
)

func PaymentRoutes(server *gin.Engine) {
	payment := server.Group("/payment", middlewares.RequireAuth())
	{
		payment.POST("/create-intent", controllers.CreatePaymentIntent)
		payment.GET("/intent/:id", controllers.GetPaymentIntent)
	}
}
