package main

import (
	"context"
	"os"
	"strings"
	"time"

	"rasoighar/internal/auth"
	"rasoighar/internal/category"
	"rasoighar/internal/customer"
	"rasoighar/internal/db"
	"rasoighar/internal/dish"
	"rasoighar/internal/events"
	"rasoighar/internal/ingredient"
	"rasoighar/internal/logger"
	"rasoighar/internal/middleware"
	"rasoighar/internal/order"
	"rasoighar/internal/report"
	"rasoighar/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	logger.Init()
	defer logger.Close()

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			logger.Fatal("missing env var: " + k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE (OPTIONAL) ─────────────────────────
	var archiver ingredient.Archiver
	if storage.Configured() {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			logger.Fatal("R2 init failed: " + err.Error())
		}
		archiver = r2Client
	}

	// ───────────────────────── EVENTS (OPTIONAL) ─────────────────────────
	var publisher order.Publisher = order.NoopPublisher{}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		topic := os.Getenv("KAFKA_TOPIC")
		if topic == "" {
			topic = "order-events"
		}
		kafkaPublisher, err := events.NewKafkaPublisher(strings.Split(brokers, ","), topic)
		if err != nil {
			logger.Fatal("kafka init failed: " + err.Error())
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	categoryRepo := category.NewPostgresRepository(pgDB)
	ingredientRepo := ingredient.NewPostgresRepository(pgDB)
	dishRepo := dish.NewPostgresRepository(pgDB)
	customerRepo := customer.NewPostgresRepository(pgDB)
	orderRepo := order.NewPostgresRepository(pgDB)
	reportRepo := report.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(userRepo)
	categoryService := category.NewService(categoryRepo)
	ingredientService := ingredient.NewService(ingredientRepo)
	dishService := dish.NewService(dishRepo)
	customerService := customer.NewService(customerRepo)
	orderService := order.NewService(orderRepo, dishService, customerService, publisher)
	reportService := report.NewService(reportRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(authService)
	categoryHandler := category.NewHandler(categoryService)
	ingredientHandler := ingredient.NewHandler(ingredientService, archiver)
	dishHandler := dish.NewHandler(dishService)
	customerHandler := customer.NewHandler(customerService)
	orderHandler := order.NewHandler(orderService)
	reportHandler := report.NewHandler(reportService)

	// ───────────────────────── AUTH ROUTES ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── CATALOG ROUTES ─────────────────────────
	categories := r.Group("/categories")
	categories.Use(middleware.AuthMiddleware())
	{
		categories.GET("", categoryHandler.List)
		admin := categories.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("", categoryHandler.Create)
			admin.PUT("/:id", categoryHandler.Update)
			admin.DELETE("/:id", categoryHandler.Delete)
		}
	}

	ingredients := r.Group("/ingredients")
	ingredients.Use(middleware.AuthMiddleware())
	{
		ingredients.GET("", ingredientHandler.List)
		admin := ingredients.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("", ingredientHandler.Create)
			admin.POST("/import", ingredientHandler.Import)
			admin.PUT("/:id", ingredientHandler.Update)
			admin.DELETE("/:id", ingredientHandler.Delete)
		}
	}

	dishes := r.Group("/dishes")
	dishes.Use(middleware.AuthMiddleware())
	{
		dishes.GET("", dishHandler.List)
		dishes.GET("/:id", dishHandler.Get)
		admin := dishes.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("", dishHandler.Create)
			admin.PUT("/:id", dishHandler.Update)
			admin.DELETE("/:id", dishHandler.Delete)
		}
	}

	customers := r.Group("/customers")
	customers.Use(middleware.AuthMiddleware())
	{
		customers.GET("", customerHandler.List)
		admin := customers.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("", customerHandler.Create)
			admin.PUT("/:id", customerHandler.Update)
			admin.DELETE("/:id", customerHandler.Delete)
		}
	}

	// ───────────────────────── ORDER ROUTES ─────────────────────────
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.PUT("/:id", orderHandler.Update)
		orders.DELETE("/:id", orderHandler.Delete)
		orders.GET("/:id/slips", orderHandler.Slips)
	}

	// ───────────────────────── REPORT ROUTES ─────────────────────────
	reports := r.Group("/reports")
	reports.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("admin"),
	)
	{
		reports.GET("", reportHandler.Get)
		reports.GET("/export", reportHandler.Export)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logger.Info("API running at http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped: " + err.Error())
	}
}
