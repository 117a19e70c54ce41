package routes

import (
	"github.com/gin-gonic/gin"

	"arkive/controllers"
)

func RegisterFileRoutes(rg *gin.RouterGroup, sc ServiceContainer) {
	fileController := controllers.NewFileController(sc.Files, sc.Trash)
	trashController := controllers.NewTrashController(sc.Trash)

	files := rg.Group("/files")
	{
		files.GET("", fileController.ListFiles)                      // GET /files
		files.POST("", fileController.UploadFile)                    // POST /files (multipart)
		files.GET("/recent", fileController.Recent)                  // GET /files/recent
		files.DELETE("/empty-trash", trashController.EmptyFileTrash) // DELETE /files/empty-trash
		files.PATCH("/:id", fileController.MoveFile)                 // PATCH /files/:id (move)
		files.PATCH("/:id/trash", fileController.ToggleTrash)        // PATCH /files/:id/trash
		files.PATCH("/:id/star", fileController.ToggleStar)          // PATCH /files/:id/star
		files.DELETE("/:id", fileController.DeleteFile)              // DELETE /files/:id (permanent)
	}
}
