package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arkive/services"
	"arkive/utils"
)

type StorageController struct {
	storageService *services.StorageService
}

func NewStorageController(storageService *services.StorageService) *StorageController {
	return &StorageController{storageService: storageService}
}

// Usage serves GET /storage: the per-category usage report.
func (sc *StorageController) Usage(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	report, err := sc.storageService.Usage(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err, "get storage usage")
		return
	}
	c.JSON(http.StatusOK, report)
}
