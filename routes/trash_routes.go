package routes

import (
	"github.com/gin-gonic/gin"

	"arkive/controllers"
)

func RegisterTrashRoutes(rg *gin.RouterGroup, sc ServiceContainer) {
	trashController := controllers.NewTrashController(sc.Trash)

	rg.DELETE("/trash", trashController.EmptyTrash) // DELETE /trash
}
