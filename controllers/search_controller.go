package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"arkive/services"
	"arkive/utils"
)

type SearchController struct {
	searchService *services.SearchService
}

func NewSearchController(searchService *services.SearchService) *SearchController {
	return &SearchController{searchService: searchService}
}

// Search serves GET /search?q=...
func (sc *SearchController) Search(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	result, err := sc.searchService.Search(c.Request.Context(), ownerID, c.Query("q"))
	if err != nil {
		handleServiceError(c, err, "search")
		return
	}
	c.JSON(http.StatusOK, result)
}
