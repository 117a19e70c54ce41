package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"arkive/services"
	"arkive/utils"
)

type FileController struct {
	fileService  *services.FileService
	trashService *services.TrashService
}

func NewFileController(fileService *services.FileService, trashService *services.TrashService) *FileController {
	return &FileController{
		fileService:  fileService,
		trashService: trashService,
	}
}

// ListFiles serves GET /files. Same filter precedence as folders: trashed,
// then starred, then folderId/root listing.
func (fc *FileController) ListFiles(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}
	if !ownerMatches(c, ownerID, c.Query("ownerId")) {
		return
	}

	switch {
	case c.Query("trashed") == "true":
		files, err := fc.fileService.ListTrashed(c.Request.Context(), ownerID)
		if err != nil {
			handleServiceError(c, err, "list trashed files")
			return
		}
		c.JSON(http.StatusOK, files)
	case c.Query("starred") == "true":
		files, err := fc.fileService.ListStarred(c.Request.Context(), ownerID)
		if err != nil {
			handleServiceError(c, err, "list starred files")
			return
		}
		c.JSON(http.StatusOK, files)
	default:
		files, err := fc.fileService.ListByFolder(c.Request.Context(), ownerID, optionalString(c.Query("folderId")))
		if err != nil {
			handleServiceError(c, err, "list files")
			return
		}
		c.JSON(http.StatusOK, files)
	}
}

// UploadFile serves POST /files (multipart). Expects a "file" part plus
// optional ownerId and folderId form fields.
func (fc *FileController) UploadFile(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}
	if !ownerMatches(c, ownerID, c.PostForm("ownerId")) {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}

	reader, err := header.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read uploaded file")
		return
	}
	defer reader.Close()

	file, err := fc.fileService.UploadFile(c.Request.Context(), ownerID, optionalString(c.PostForm("folderId")), services.Upload{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      reader,
	})
	if err != nil {
		handleServiceError(c, err, "upload file")
		return
	}
	c.JSON(http.StatusOK, file)
}

// UploadFolder serves POST /folders/upload (multipart). Each form file key
// is the slash-separated path of the entry relative to the chosen parent.
func (fc *FileController) UploadFolder(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}
	if !ownerMatches(c, ownerID, c.PostForm("ownerId")) {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form")
		return
	}

	var entries []services.BatchEntry
	var openErr error
	closers := make([]interface{ Close() error }, 0, len(form.File))
	defer func() {
		for _, r := range closers {
			r.Close()
		}
	}()

	for key, headers := range form.File {
		for _, header := range headers {
			reader, err := header.Open()
			if err != nil {
				openErr = err
				break
			}
			closers = append(closers, reader)

			path := header.Filename
			if key != "" && key != "file" && key != "files" {
				path = key
			}
			entries = append(entries, services.BatchEntry{
				RelativePath: path,
				Size:         header.Size,
				ContentType:  header.Header.Get("Content-Type"),
				Reader:       reader,
			})
		}
	}
	if openErr != nil {
		utils.BadRequestResponse(c, "Failed to read uploaded files")
		return
	}

	result, err := fc.fileService.UploadFolder(c.Request.Context(), ownerID, optionalString(c.PostForm("parentId")), entries)
	if err != nil {
		handleServiceError(c, err, "upload folder")
		return
	}
	utils.SuccessResponse(c, "Folder uploaded", result)
}

// MoveFile serves PATCH /files/{id}. Only parentId is movable on a file;
// null means move to root, an absent key changes nothing.
func (fc *FileController) MoveFile(c *gin.Context) {
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

	var parentID *string
	_, parentSet := raw["parentId"]
	if parentSet {
		if err := json.Unmarshal(raw["parentId"], &parentID); err != nil {
			utils.BadRequestResponse(c, "Invalid parent folder ID")
			return
		}
	}

	file, err := fc.fileService.MoveFile(c.Request.Context(), ownerID, c.Param("id"), parentID, parentSet)
	if err != nil {
		handleServiceError(c, err, "move file")
		return
	}
	c.JSON(http.StatusOK, file)
}

// ToggleTrash serves PATCH /files/{id}/trash.
func (fc *FileController) ToggleTrash(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	file, err := fc.trashService.ToggleFileTrash(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "toggle file trash")
		return
	}
	c.JSON(http.StatusOK, file)
}

// ToggleStar serves PATCH /files/{id}/star.
func (fc *FileController) ToggleStar(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	file, err := fc.fileService.ToggleStar(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "toggle file star")
		return
	}
	c.JSON(http.StatusOK, file)
}

// DeleteFile serves DELETE /files/{id}: strict single-file permanent delete.
func (fc *FileController) DeleteFile(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	file, err := fc.trashService.DeleteFile(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err, "delete file")
		return
	}
	c.JSON(http.StatusOK, file)
}

// Recent serves GET /files/recent.
func (fc *FileController) Recent(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		utils.UnauthorizedResponse(c, err.Error())
		return
	}

	files, err := fc.fileService.Recent(c.Request.Context(), ownerID)
	if err != nil {
		handleServiceError(c, err, "list recent files")
		return
	}
	c.JSON(http.StatusOK, files)
}
