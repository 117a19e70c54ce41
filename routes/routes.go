// routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"arkive/middleware"
	"arkive/services"
)

// ServiceContainer bundles the services the route groups need, so main.go
// wires dependencies once and registration stays declarative.
type ServiceContainer struct {
	Folders  *services.FolderService
	Files    *services.FileService
	Trash    *services.TrashService
	Search   *services.SearchService
	Storage  *services.StorageService
	Verifier middleware.IdentityVerifier
}

// SetupRoutes registers every API route group under the given group. All
// routes require a valid bearer token.
func SetupRoutes(api *gin.RouterGroup, sc ServiceContainer) {
	api.Use(middleware.AuthMiddleware(sc.Verifier))

	RegisterFolderRoutes(api, sc)
	RegisterFileRoutes(api, sc)
	RegisterTrashRoutes(api, sc)
	RegisterSearchRoutes(api, sc)
	RegisterStorageRoutes(api, sc)
}
