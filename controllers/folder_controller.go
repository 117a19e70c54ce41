package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"arkive/services"
	"arkive/utils"
)

type FolderController struct {
	folderService *services.FolderService
	trashService  *services.TrashService
}

func NewFolderController(folderService *services.FolderService, trashService *services.TrashService) *FolderController {
	return &FolderController{
		folderService: folderService,
		trashService:  trashService,
	}
}

// ListFolders serves GET /folders. Filter precedence when several query
// params are present: folderId single lookup, then trashed, then starred,
// then parentId/root listing.
func (fc *FolderController) ListFolders(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}
	if !ownerMatches(c, ownerID, c.Query("ownerId")) {
		return
	}

	if folderID := c.Query("folderId"); folderID != "" {
		folder, err := fc.folderService.GetFolder(c.Request.Context(), ownerID, folderID)
		if err != nil {
			handleServiceError(c, err, "get folder")
			return
		}
		c.JSON(http.StatusOK, folder)
		return
	}

	switch {
	case c.Query("trashed") == "true":
		folders, err := fc.folderService.ListTrashed(c.Request.Context(), ownerID)
		if err != nil {
			handleServiceError(c, err, "list trashed folders")
			return
		}
		c.JSON(http.StatusOK, folders)
	case c.Query("starred") == "true":
		folders, err := fc.folderService.ListStarred(c.Request.Context(), ownerID)
		if err != nil {
			handleServiceError(c, err, "list starred folders")
			return
		}
		c.JSON(http.StatusOK, folders)
	default:
		folders, err := fc.folderService.ListChildren(c.Request.Context(), ownerID, optionalString(c.Query("parentId")))
		if err != nil {
			handleServiceError(c, err, "list folders")
			return
		}
		c.JSON(http.StatusOK, folders)
	}
}

// CreateFolder serves POST /folders.
func (fc *FolderController) CreateFolder(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	var req struct {
		Name     string  `json:"name"`
		OwnerID  string  `json:"ownerId"`
		ParentID *string `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if !ownerMatches(c, ownerID, req.OwnerID) {
		return
	}
	if err := validation.Validate(req.Name, validation.Required, validation.Length(1, 255)); err != nil {
		utils.BadRequestResponse(c, "Folder name is required")
		return
	}

	folder, err := fc.folderService.CreateFolder(c.Request.Context(), ownerID, req.Name, req.ParentID)
	if err != nil {
		handleServiceError(c, err, "create folder")
		return
	}
	c.JSON(http.StatusOK, folder)
}

// UpdateFolder serves PATCH /folders/{id}. The body is decoded twice: once
// into typed fields and once into a raw map, because "parentId": null (move
// to root) must be told apart from parentId absent (leave in place).
func (fc *FolderController) UpdateFolder(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}
	if !bodyOwnerMatches(c, ownerID, raw) {
		return
	}

	var name *string
	if rawName, ok := raw["name"]; ok {
		if err := json.Unmarshal(rawName, &name); err != nil || name == nil {
			utils.BadRequestResponse(c, "Invalid folder name")
			return
		}
	}

	var parentID *string
	_, parentSet := raw["parentId"]
	if parentSet {
		if err := json.Unmarshal(raw["parentId"], &parentID); err != nil {
			utils.BadRequestResponse(c, "Invalid parent folder ID")
			return
		}
	}

	folder, err := fc.folderService.UpdateFolder(c.Request.Context(), ownerID, c.Param("id"), name, parentID, parentSet)
	if err != nil {
		handleServiceError(c, err, "update folder")
		return
	}
	c.JSON(http.StatusOK, folder)
}

// ToggleTrash serves PATCH /folders/{id}/trash.
func (fc *FolderController) ToggleTrash(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	folder, err := fc.trashService.ToggleFolderTrash(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "toggle folder trash")
		return
	}
	c.JSON(http.StatusOK, folder)
}

// ToggleStar serves PATCH /folders/{id}/star.
func (fc *FolderController) ToggleStar(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	folder, err := fc.folderService.ToggleStar(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "toggle folder star")
		return
	}
	c.JSON(http.StatusOK, folder)
}

// DeleteFolder serves DELETE /folders/{id}: the recursive permanent purge.
func (fc *FolderController) DeleteFolder(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	summary, err := fc.trashService.DeleteFolderTree(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "delete folder")
		return
	}
	utils.SuccessResponse(c, "Folder deleted", summary)
}

// Breadcrumbs serves GET /folders/{id}/breadcrumbs: the ancestor chain from
// the root down to the folder itself.
func (fc *FolderController) Breadcrumbs(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	crumbs, err := fc.folderService.Ancestors(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "get breadcrumbs")
		return
	}
	c.JSON(http.StatusOK, crumbs)
}
