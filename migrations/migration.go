package main

import (
	"gql-storefront/infra"
	"gql-storefront/models"
)

func main() {
	infra.Initialize()
	db := infra.SetupDB()

	if err := db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartItem{}); err != nil {
		panic("Failed to migrate database")
	}
}
