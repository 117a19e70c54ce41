package routes

import (
	"github.com/gin-gonic/gin"

	"arkive/controllers"
)

func RegisterStorageRoutes(rg *gin.RouterGroup, sc ServiceContainer) {
	storageController := controllers.NewStorageController(sc.Storage)

	rg.GET("/storage", storageController.Usage) // GET /storage
}
