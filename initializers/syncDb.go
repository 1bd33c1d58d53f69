package initializers

import (
	"log"

	"github.com/aurelshop/aurel-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.WishlistItem{},
		&models.CartItem{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to sync database:", err)
	}
	log.Println("Database synced successfully.")
}
