package app

import (
	"errors"
	"fmt"

	"nepshift_backend/database"
	"nepshift_backend/internal/auth"
	"nepshift_backend/internal/config"
	"nepshift_backend/internal/email"
	"nepshift_backend/internal/handlers"
	"nepshift_backend/internal/logger"
	"nepshift_backend/internal/middleware"
	"nepshift_backend/internal/models"
	"nepshift_backend/internal/routes"
	"nepshift_backend/internal/services"
	"nepshift_backend/internal/storage"
	"nepshift_backend/internal/validator"
	"nepshift_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", "error", err)
	}
	logger.Info("database connected and migrated")

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Fatal("failed to seed first admin", "error", err)
	}

	router := SetupRouter(cfg, db)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	store, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	emailProvider := buildEmailProvider(cfg)

	container := services.NewServiceContainer(db, store, emailProvider, cfg)
	appHandlers := handlers.NewAppHandlers(container, validator.New(), db, store)

	wsManager := ws.NewManager(container.Chat)
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(router, appHandlers, wsHandler)
	return router
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("email notifications disabled, using noop provider")
		return email.NoopProvider{}
	}

	provider, err := email.NewSMTPProvider(email.Config{
		SMTPHost: cfg.Email.SMTPHost,
		SMTPPort: cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.FromEmail,
		FromName: cfg.Email.FromName,
	})
	if err != nil {
		logger.Fatal("failed to initialize smtp provider", "error", err)
	}
	return provider
}

// seedFirstAdmin guarantees a fresh deploy has an account that can moderate
// the verification queue.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL / FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", cfg.FirstAdminEmail).First(&existing).Error
		if err == nil {
			logger.Info("admin user already exists", "email", cfg.FirstAdminEmail)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := auth.HashPassword(cfg.FirstAdminPassword)
		if err != nil {
			return err
		}

		admin := models.User{
			Email:        cfg.FirstAdminEmail,
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
			FullName:     "Administrator",
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		logger.Info("first admin user created", "email", cfg.FirstAdminEmail)
		return nil
	})
}
