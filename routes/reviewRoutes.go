package routes

import (
	"github.com/aurelshop/aurel-api/controllers"
	"github.com/aurelshop/aurel-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ReviewRoutes(server *gin.Engine) {
	server.GET("/reviews/product/:productId", controllers.GetProductReviews)

	reviews := server.Group("/reviews", middlewares.RequireAuth())
	{
		reviews.POST("", controllers.CreateReview)
		reviews.PUT("/:id", controllers.UpdateReview)
		reviews.DELETE("/:id", controllers.DeleteReview)
	}
}
