package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/SHAIK-07/sunmax/config"
	"github.com/SHAIK-07/sunmax/internal/backend"
	"github.com/SHAIK-07/sunmax/internal/cart"
	"github.com/SHAIK-07/sunmax/internal/gateway/handlers"
	"github.com/SHAIK-07/sunmax/internal/gateway/middleware"
	"github.com/SHAIK-07/sunmax/internal/quote"
	"github.com/SHAIK-07/sunmax/internal/stock"
	"github.com/SHAIK-07/sunmax/internal/store"
	"github.com/SHAIK-07/sunmax/internal/users"
	"github.com/SHAIK-07/sunmax/internal/utils"
)

func main() {
	cfg := config.LoadConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	utils.SetSecret(cfg.Auth.JWTSecret)

	var rdb *redis.Client
	if cfg.Store.Driver == "redis" {
		rdb = config.NewRedisClient(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	}

	sessionStore, err := buildStore(cfg, rdb)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)
	reserver := stock.NewReserver(client, rdb, logger)

	cartManager := cart.NewManager(sessionStore, reserver, logger)
	quoteManager := quote.NewManager(sessionStore, logger)
	admin := users.NewAdmin(client)

	cartHandler := handlers.NewCartHTTPHandler(cartManager, reserver)
	quoteHandler := handlers.NewQuoteHTTPHandler(quoteManager)
	inventoryHandler := handlers.NewInventoryHTTPHandler(client, reserver)
	userHandler := handlers.NewUserHTTPHandler(admin, client, cfg.Auth.TokenTTL)
	prefsHandler := handlers.NewPrefsHTTPHandler(sessionStore)
	searchHandler := handlers.NewSearchHTTPHandler()

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit())

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		cartGroup := protected.Group("/cart")
		{
			cartGroup.GET("", cartHandler.GetCart)
			cartGroup.POST("/items", cartHandler.AddItem)
			cartGroup.PATCH("/items/:id/quantity", cartHandler.UpdateQuantity)
			cartGroup.PATCH("/items/:id/discount", cartHandler.SetDiscount)
			cartGroup.DELETE("/items/:id", cartHandler.RemoveItem)
			cartGroup.DELETE("", cartHandler.ClearCart)
			cartGroup.POST("/discount", cartHandler.ApplyGlobalDiscount)
			cartGroup.DELETE("/discount", cartHandler.ResetDiscount)
		}

		quoteGroup := protected.Group("/quote")
		{
			quoteGroup.GET("", quoteHandler.GetQuote)
			quoteGroup.POST("/items", quoteHandler.AddItem)
			quoteGroup.POST("/items/:code/increase", quoteHandler.Increase)
			quoteGroup.POST("/items/:code/decrease", quoteHandler.Decrease)
			quoteGroup.DELETE("/items/:code", quoteHandler.Remove)
		}

		inventoryGroup := protected.Group("/inventory")
		{
			inventoryGroup.GET("/detail", inventoryHandler.GetDetail)
			inventoryGroup.POST("/detail/open", inventoryHandler.OpenDetail)
			inventoryGroup.POST("/detail/close", inventoryHandler.CloseDetail)
			inventoryGroup.POST("/items/:code/edit", inventoryHandler.BeginEdit)
			inventoryGroup.POST("/items/:code/cancel", inventoryHandler.CancelEdit)
			inventoryGroup.PUT("/items/:code", inventoryHandler.SaveEdit)
			inventoryGroup.DELETE("/items/:code", inventoryHandler.DeleteItem)
		}

		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("", userHandler.ListUsers)
			usersGroup.GET("/:id", userHandler.GetUser)
			usersGroup.POST("", userHandler.CreateUser)
			usersGroup.PUT("/:id", userHandler.UpdateUser)
			usersGroup.DELETE("/:id", userHandler.DeleteUser)
		}

		prefsGroup := protected.Group("/prefs")
		{
			prefsGroup.GET("", prefsHandler.GetPrefs)
			prefsGroup.PUT("/:key", prefsHandler.SetPref)
		}

		searchGroup := protected.Group("/search")
		{
			searchGroup.POST("/cards", searchHandler.FilterCards)
			searchGroup.POST("/rows", searchHandler.FilterRows)
		}
	}

	r.GET("/health", healthCheckHandler(rdb))

	port := ":" + cfg.Server.Port
	log.Printf("Starting server on port %s", port)
	if err := r.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func buildStore(cfg config.Config, rdb *redis.Client) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := store.NewConnection(cfg.Store.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewRedisStore(rdb), nil
	}
}

func healthCheckHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		httpStatus := http.StatusOK

		if rdb != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				status = "degraded"
				httpStatus = http.StatusPartialContent
			}
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	}
}
