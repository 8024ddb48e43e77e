package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gql-storefront/graph"
	"gql-storefront/infra"
	"gql-storefront/middlewares"
	"gql-storefront/models"
	"gql-storefront/repositories"
	"gql-storefront/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB) *gin.Engine {
	userRepository := repositories.NewUserRepository(db)
	itemRepository := repositories.NewItemRepository(db)
	cartRepository := repositories.NewCartRepository(db)

	mailService := services.NewMailService()
	authService := services.NewAuthService(userRepository, mailService)
	itemService := services.NewItemService(itemRepository)
	cartService := services.NewCartService(cartRepository, itemRepository)

	resolver := graph.NewResolver(authService, itemService, cartService)
	executor := graph.NewExecutor(resolver)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		corsConfig.AllowOrigins = []string{frontend}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	// The session cookie requires credentialed CORS.
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middlewares.AuthMiddleware(authService))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/graphql", graph.Handler(executor))

	return r
}

func initDB() *gorm.DB {
	infra.Initialize()
	db := infra.SetupDB()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := db.AutoMigrate(&models.User{}, &models.Item{}, &models.CartItem{}); err != nil {
			panic("Failed to migrate database")
		}
	}
	return db
}

func main() {
	db := initDB()
	r := setupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}
