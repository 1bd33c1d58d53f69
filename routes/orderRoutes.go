package routes

import (
	"github.com/aurelshop/aurel-api/controllers"
	"github.com/aurelshop/aurel-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	orders := server.Group("/orders", middlewares.RequireAuth())
	{
		orders.POST("", controllers.CreateOrder)
		orders.GET("/myorders", controllers.GetMyOrders)
		orders.GET("/:id", controllers.GetOrderByID)
		orders.PUT("/:id/pay", controllers.UpdateOrderToPaid)

		orders.GET("", middlewares.RequireAdmin(), controllers.GetOrders)
		orders.PUT("/:id/status", middlewares.RequireAdmin(), controllers.UpdateOrderStatus)
	}
}
