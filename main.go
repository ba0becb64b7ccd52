package main

import (
	"fmt"
	"log"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/config"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/database"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/handlers"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/logger"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/middleware"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/services"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.Log.Level)
	logger.Infof("starting EDUGEP service")

	if err := database.InitMySQL(&cfg.Database); err != nil {
		log.Fatalf("init mysql failed: %v", err)
	}

	database.DB.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.StoredFile{},
		&models.FolderLike{},
		&models.Tag{},
		&models.FolderAudit{},
		&models.FileAudit{},
	)
	logger.Infof("database migration completed")

	if err := database.InitRedis(&cfg.Redis); err != nil {
		log.Fatalf("init redis failed: %v", err)
	}

	store, err := storage.NewLocal(cfg.Storage.BasePath)
	if err != nil {
		log.Fatalf("init storage failed: %v", err)
	}

	repoContainer := repositories.NewGormRepositories(database.DB, database.RedisClient).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, store)
	handlers.SetServices(serviceContainer)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())
	setupRoutes(r, repoContainer.TokenBlacklist)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func setupRoutes(r *gin.Engine, blacklist repositories.TokenBlacklistRepository) {
	api := r.Group("/api")

	api.GET("/health", handlers.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(blacklist))
	{
		protected.POST("/auth/logout", handlers.Logout)
		protected.GET("/auth/profile", handlers.GetProfile)

		protected.GET("/folders", handlers.ListFolders)
		protected.POST("/folders", handlers.CreateFolder)
		protected.GET("/folders/:id", handlers.GetFolder)
		protected.PUT("/folders/:id", handlers.EditFolder)
		protected.DELETE("/folders/:id", handlers.DeleteFolder)
		protected.POST("/folders/:id/like", handlers.ToggleFolderLike)

		protected.GET("/folders/:id/files", handlers.ListFiles)
		protected.POST("/folders/:id/files", handlers.UploadFile)
		protected.PUT("/files/:id", handlers.EditFile)
		protected.DELETE("/files/:id", handlers.DeleteFile)
		protected.GET("/files/:id/download", handlers.DownloadFile)
		protected.GET("/files/:id/preview", handlers.PreviewFile)
		protected.GET("/files/:id/thumbnail", handlers.GetThumbnail)

		protected.GET("/tags", handlers.ListTags)
		protected.POST("/tags", handlers.CreateTag)
		protected.DELETE("/tags/:id", handlers.DeleteTag)

		protected.GET("/audits/folders", handlers.ListFolderAudits)
		protected.GET("/audits/files", handlers.ListFileAudits)
	}
}
