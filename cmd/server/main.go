package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/user/silant-service-api/internal/config"
	"github.com/user/silant-service-api/internal/handlers"
	"github.com/user/silant-service-api/internal/middleware"
	"github.com/user/silant-service-api/internal/models"
	"github.com/user/silant-service-api/internal/repository"
	"github.com/user/silant-service-api/internal/services/auth"
	"github.com/user/silant-service-api/internal/services/resync"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Подключение к БД, миграция выполняется внутри NewDB
	db, err := repository.NewDB(cfg.Database)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}

	repo := repository.NewRepository(db)

	// Секрет для JWT
	if cfg.Auth.JWTSecret != "" {
		auth.SetSecret(cfg.Auth.JWTSecret)
	}

	// Ночная сверка денормализованных данных
	resyncService := resync.NewService(repo)

	c := cron.New(cron.WithLocation(time.UTC))
	_, err = c.AddFunc("0 2 * * *", resyncService.Run)
	if err != nil {
		log.Fatalf("Ошибка добавления cron-задачи сверки: %v", err)
	}

	// Сверка при запуске приложения
	go func() {
		log.Println("[Старт] Сверка данных рекламаций...")
		resyncService.Run()
	}()

	c.Start()
	defer c.Stop()

	// Инициализация HTTP-сервера
	router := gin.Default()
	router.Use(middleware.CORS())

	authHandler := auth.NewAuthHandler(repo)
	h := handlers.NewHandler(repo)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Авторизация
		api.POST("/login",
			middleware.LoginRateLimit(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst),
			authHandler.Login)
		api.GET("/auth/me", middleware.Auth(), authHandler.GetCurrentUser)

		// Публичный поиск по VIN (без авторизации)
		api.GET("/cars/:vin", h.GetCarByVIN)
		api.GET("/cars/:vin/pdf", h.GetCarPassportPDF)

		// Чтение открыто, запись под авторизацией
		api.GET("/cars", h.GetCars)
		api.POST("/cars", middleware.Auth(), middleware.RequireRole(models.RoleManager), h.CreateCar)

		api.GET("/maintenance", h.GetMaintenance)
		api.POST("/maintenance",
			middleware.Auth(), middleware.RequireRole(models.RoleManager, models.RoleService),
			h.CreateMaintenance)

		api.GET("/complaints", h.GetComplaints)
		api.POST("/complaints",
			middleware.Auth(), middleware.RequireRole(models.RoleManager, models.RoleService),
			h.CreateComplaint)

		// Клиенты для селектов
		api.GET("/models/clients", h.GetClients)

		// Справочники: чтение открыто, изменение под ролевой проверкой в обработчике
		mdl := api.Group("/models")
		{
			mdl.GET("/:type", h.ListRefModels)
			mdl.GET("/:type/:id", h.GetRefModel)
			mdl.PUT("/:type/:id", middleware.Auth(),
				middleware.RequireRole(models.RoleManager, models.RoleService),
				h.UpdateRefModel)
			mdl.DELETE("/:type/:id", middleware.Auth(),
				middleware.RequireRole(models.RoleManager),
				h.DeleteRefModel)
		}
	}

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Сервер запущен на порту %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
