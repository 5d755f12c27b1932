package main

import (
	"catalog-service/internal/handler"
	"catalog-service/internal/middleware"
	"catalog-service/internal/model"
	"catalog-service/internal/store"
	"catalog-service/internal/upload"
	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/pkg/mailer"
	"catalog-service/prometheus"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables from .env file if present
	_ = godotenv.Load()

	appConfig, err := config.Load("catalog-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	jwtutil.Initialize(&appConfig.JWT)
	prometheus.InitMetrics(appConfig)

	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(
		&model.User{},
		&model.Profile{},
		&model.Product{},
		&model.Ingredient{},
	); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	uploads, err := upload.New(appConfig.Upload.Dir)
	if err != nil {
		log.Fatal("Failed to initialize upload storage", zap.Error(err))
	}

	db := database.GetDB()
	userStore := store.NewUserStore(db)
	profileStore := store.NewProfileStore(db)
	productStore := store.NewProductStore(db)
	ingredientStore := store.NewIngredientStore(db)

	mail := mailer.New(&appConfig.SMTP, appConfig.Server.BaseURL)

	authHandler := handler.NewAuthHandler(userStore, profileStore, mail)
	profileHandler := handler.NewProfileHandler(profileStore)
	productHandler := handler.NewProductHandler(productStore, uploads)
	ingredientHandler := handler.NewIngredientHandler(ingredientStore)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(middleware.MetricsMiddleware)

	e.GET("/health", handler.Health)
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.Static(upload.URLPrefix, uploads.Dir())

	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/confirm-email", authHandler.ConfirmEmail)

	authRequired := middleware.JWTAuth(profileStore)

	profile := e.Group("/api/profile", authRequired)
	profile.GET("", profileHandler.Get)
	profile.PUT("", profileHandler.Update)

	products := e.Group("/api/products", authRequired)
	products.GET("", productHandler.List)
	products.GET("/export", productHandler.Export)
	products.POST("/import", productHandler.Import)
	products.GET("/:id", productHandler.Get)
	products.POST("", productHandler.Create)
	products.PUT("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Delete)
	products.POST("/:id/image", productHandler.UploadImage)
	products.DELETE("/:id/image", productHandler.DeleteImage)

	ingredients := e.Group("/api/ingredients", authRequired)
	ingredients.GET("", ingredientHandler.List)
	ingredients.GET("/export", ingredientHandler.Export)
	ingredients.POST("/import", ingredientHandler.Import)
	ingredients.GET("/:id", ingredientHandler.Get)
	ingredients.POST("", ingredientHandler.Create)
	ingredients.PUT("/:id", ingredientHandler.Update)
	ingredients.DELETE("/:id", ingredientHandler.Delete)

	log.Info("Starting catalog service", zap.String("port", appConfig.Server.Port))
	if err := e.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
