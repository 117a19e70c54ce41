package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"arkive/config"
	"arkive/routes"
	"arkive/services"
	"arkive/store"
	"arkive/utils"
)

func main() {
	// Load .env before config reads the environment
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config.LoadConfig()
	cfg := config.AppConfig

	utils.InitLogger(cfg.Env)

	ctx, cancel := config.CreateContext(10 * time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		disconnectCtx, disconnectCancel := config.CreateContext(5 * time.Second)
		defer disconnectCancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Printf("Failed to disconnect MongoDB: %v", err)
		}
	}()

	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	utils.Log.Info().Msg("connected to MongoDB")

	b2Service, err := services.NewB2Service(ctx, cfg.B2ApplicationKeyID, cfg.B2ApplicationKey, cfg.B2BucketName)
	if err != nil {
		log.Fatalf("Failed to initialize B2: %v", err)
	}

	db := mongoClient.Database(cfg.DatabaseName)
	folderStore := store.NewMongoFolderStore(db)
	fileStore := store.NewMongoFileStore(db)

	folderService := services.NewFolderService(folderStore, fileStore)
	fileService := services.NewFileService(fileStore, folderStore, b2Service)
	trashService := services.NewTrashService(fileStore, folderStore, b2Service)
	searchService := services.NewSearchService(fileStore, folderStore)
	storageService := services.NewStorageService(fileStore, cfg.StorageLimit)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	api := router.Group("/api")
	routes.SetupRoutes(api, routes.ServiceContainer{
		Folders: folderService,
		Files:   fileService,
		Trash:   trashService,
		Search:  searchService,
		Storage: storageService,
		Verifier: &utils.JWTVerifier{
			Secret: cfg.JWTSecret,
			Issuer: cfg.JWTIssuer,
		},
	})

	utils.Log.Info().Str("port", cfg.Port).Msg("starting arkive server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestOrigin := c.Request.Header.Get("Origin")

		var allowOrigin string
		if len(allowedOrigins) == 0 {
			allowOrigin = "*"
		} else {
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == requestOrigin {
					allowOrigin = requestOrigin
					if allowed == "*" {
						allowOrigin = "*"
					}
					break
				}
			}
			if allowOrigin == "" {
				allowOrigin = allowedOrigins[0]
			}
		}

		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
