package controllers

import (
	"github.com/gin-gonic/gin"

	"arkive/services"
	"arkive/utils"
)

type TrashController struct {
	trashService *services.TrashService
}

func NewTrashController(trashService *services.TrashService) *TrashController {
	return &TrashController{trashService: trashService}
}

// EmptyTrash serves DELETE /trash: permanently removes every trashed file
// and trashed folder subtree belonging to the caller.
func (tc *TrashController) EmptyTrash(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	summary, err := tc.trashService.EmptyTrash(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err, "empty trash")
		return
	}
	utils.SuccessResponse(c, "Trash emptied", summary)
}

// EmptyFileTrash serves DELETE /files/empty-trash: files only.
func (tc *TrashController) EmptyFileTrash(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	summary, err := tc.trashService.EmptyFileTrash(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err, "empty file trash")
		return
	}
	utils.SuccessResponse(c, "File trash emptied", summary)
}
