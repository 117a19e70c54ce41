package routes

import (
	"github.com/gin-gonic/gin"

	"arkive/controllers"
)

func RegisterFolderRoutes(rg *gin.RouterGroup, sc ServiceContainer) {
	folderController := controllers.NewFolderController(sc.Folders, sc.Trash)
	fileController := controllers.NewFileController(sc.Files, sc.Trash)

	folders := rg.Group("/folders")
	{
		folders.GET("", folderController.ListFolders)                 // GET /folders
		folders.POST("", folderController.CreateFolder)               // POST /folders
		folders.POST("/upload", fileController.UploadFolder)          // POST /folders/upload
		folders.PATCH("/:id", folderController.UpdateFolder)          // PATCH /folders/:id (rename, move)
		folders.PATCH("/:id/trash", folderController.ToggleTrash)     // PATCH /folders/:id/trash
		folders.PATCH("/:id/star", folderController.ToggleStar)       // PATCH /folders/:id/star
		folders.DELETE("/:id", folderController.DeleteFolder)         // DELETE /folders/:id (recursive, permanent)
		folders.GET("/:id/breadcrumbs", folderController.Breadcrumbs) // GET /folders/:id/breadcrumbs
	}
}
