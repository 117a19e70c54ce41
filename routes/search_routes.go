package routes

import (
	"github.com/gin-gonic/gin"

	"arkive/controllers"
)

func RegisterSearchRoutes(rg *gin.RouterGroup, sc ServiceContainer) {
	searchController := controllers.NewSearchController(sc.Search)

	rg.GET("/search", searchController.Search) // GET /search?q=
}
