package routes

import (
	"github.com/aurelshop/aurel-api/controllers"
	"github.com/aurelshop/aurel-api/middlewares"
	"github.com/gin-gonic/gin"
)

func UserRoutes(server *gin.Engine) {
	users := server.Group("/users", middlewares.RequireAuth())
	{
		users.GET("/profile", controllers.GetProfile)
		users.PUT("/profile", controllers.UpdateProfile)

		users.POST("/address", controllers.AddAddress)
		users.PUT("/address/:addressId", controllers.UpdateAddress)
		users.DELETE("/address/:addressId", controllers.DeleteAddress)

		users.POST("/wishlist/:productId", controllers.AddToWishlist)
		users.DELETE("/wishlist/:productId", controllers.RemoveFromWishlist)

		users.POST("/cart", controllers.AddToCart)
		users.DELETE("/cart", controllers.ClearCart)
		users.PUT("/cart/:itemId", controllers.UpdateCartItem)
		users.DELETE("/cart/:itemId", controllers.RemoveFromCart)
	}
}
