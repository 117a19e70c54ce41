package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arkive/models"
	"arkive/services"
	"arkive/store"
	"arkive/utils"
)

const (
	testSecret = "test-secret-key-for-router-tests"
	testIssuer = "arkive-test"
)

type stubObjectStore struct {
	deletes []string
}

func (s *stubObjectStore) Upload(_ context.Context, r io.Reader, name, folderPath string) (*services.UploadResult, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return nil, err
	}
	return &services.UploadResult{
		ObjectID: folderPath + "/" + name,
		URL:      "https://blobs.test" + folderPath + "/" + name,
		Size:     n,
	}, nil
}

func (s *stubObjectStore) Delete(_ context.Context, objectID string) error {
	s.deletes = append(s.deletes, objectID)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	folderStore := store.NewMemoryFolderStore()
	fileStore := store.NewMemoryFileStore()
	objects := &stubObjectStore{}

	folderService := services.NewFolderService(folderStore, fileStore)
	fileService := services.NewFileService(fileStore, folderStore, objects)
	trashService := services.NewTrashService(fileStore, folderStore, objects)
	searchService := services.NewSearchService(fileStore, folderStore)
	storageService := services.NewStorageService(fileStore, 2147483648)

	router := gin.New()
	api := router.Group("/api")
	SetupRoutes(api, ServiceContainer{
		Folders:  folderService,
		Files:    fileService,
		Trash:    trashService,
		Search:   searchService,
		Storage:  storageService,
		Verifier: &utils.JWTVerifier{Secret: testSecret, Issuer: testIssuer},
	})
	return router
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := utils.GenerateToken(userID, userID+"@example.com", userID, testSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/folders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutesRejectBadToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/folders", "Bearer not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateFolderOwnerMismatch(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/folders", bearerFor(t, "alice"), gin.H{
		"name":    "Docs",
		"ownerId": "bob",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListFolders(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Docs"})
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Docs", created.Name)
	assert.Equal(t, "alice", created.OwnerID)

	w = doJSON(t, router, http.MethodGet, "/api/folders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// Another owner sees nothing.
	w = doJSON(t, router, http.MethodGet, "/api/folders", bearerFor(t, "bob"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var other []models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &other))
	assert.Empty(t, other)
}

func TestCreateFolderBlankName(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/folders", bearerFor(t, "alice"), gin.H{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSingleFolderLookupMiss(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/folders?folderId=ghost", bearerFor(t, "alice"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadListAndTrashFile(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Docs"})
	require.Equal(t, http.StatusOK, w.Code)
	var folder models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &folder))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	// No Content-Type on the part, so the extension fallback kicks in.
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="a.pdf"`)
	part, err := mw.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 128))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("folderId", folder.ID))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var uploaded models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))
	assert.Equal(t, "a.pdf", uploaded.Name)
	assert.Equal(t, "application/pdf", uploaded.Type)
	assert.Equal(t, int64(128), uploaded.Size)

	w = doJSON(t, router, http.MethodGet, "/api/files?folderId="+folder.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var files []models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	require.Len(t, files, 1)

	w = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/files/%s/trash", uploaded.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/files?folderId="+folder.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	files = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	assert.Empty(t, files)

	w = doJSON(t, router, http.MethodGet, "/api/files?trashed=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	files = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	require.Len(t, files, 1)
}

func TestMoveFolderToRootViaPatch(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Parent"})
	require.Equal(t, http.StatusOK, w.Code)
	var parent models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parent))

	w = doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Child", "parentId": parent.ID})
	require.Equal(t, http.StatusOK, w.Code)
	var child models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &child))
	require.NotNil(t, child.ParentID)

	// Explicit null parentId moves to root; a rename body without the key
	// must not.
	w = doJSON(t, router, http.MethodPatch, "/api/folders/"+child.ID, token, map[string]interface{}{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	var renamed models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &renamed))
	assert.NotNil(t, renamed.ParentID)

	w = doJSON(t, router, http.MethodPatch, "/api/folders/"+child.ID, token, map[string]interface{}{"parentId": nil})
	require.Equal(t, http.StatusOK, w.Code)
	var moved models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))
	assert.Nil(t, moved.ParentID)
	assert.Equal(t, "/folders/alice/"+child.ID, moved.Path)
}

func TestPatchFileOwnerMismatch(t *testing.T) {
	router := newTestRouter(t)

	// The mismatch must be rejected at the boundary, before the service can
	// turn the missing id into a 404.
	w := doJSON(t, router, http.MethodPatch, "/api/files/ghost", bearerFor(t, "alice"), map[string]interface{}{
		"ownerId":  "bob",
		"parentId": nil,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPatchFolderOwnerMismatch(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Docs"})
	require.Equal(t, http.StatusOK, w.Code)
	var folder models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &folder))

	w = doJSON(t, router, http.MethodPatch, "/api/folders/"+folder.ID, token, map[string]interface{}{
		"ownerId": "bob",
		"name":    "Hijacked",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The folder is untouched.
	w = doJSON(t, router, http.MethodGet, "/api/folders?folderId="+folder.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Docs", got.Name)
}

func TestPatchFileMatchingOwnerAccepted(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "a.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("data"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files", &buf)
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var uploaded models.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))

	w = doJSON(t, router, http.MethodPatch, "/api/files/"+uploaded.ID, token, map[string]interface{}{
		"ownerId":  "alice",
		"parentId": nil,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteFolderReturnsSummary(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Root"})
	require.Equal(t, http.StatusOK, w.Code)
	var root models.Folder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))

	w = doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Sub", "parentId": root.ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/folders/"+root.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			FilesDeleted   int `json:"filesDeleted"`
			FoldersDeleted int `json:"foldersDeleted"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, 2, envelope.Data.FoldersDeleted)
}

func TestSearchEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodPost, "/api/folders", token, gin.H{"name": "Tax Documents"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/search?q=tax", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Files   []models.File   `json:"files"`
		Folders []models.Folder `json:"folders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Folders, 1)
	assert.Empty(t, result.Files)
}

func TestStorageEndpointShape(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodGet, "/api/storage", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		TotalUsed      int64   `json:"totalUsed"`
		TotalAvailable int64   `json:"totalAvailable"`
		PercentageUsed float64 `json:"percentageUsed"`
		Categories     []struct {
			Type string `json:"type"`
			Name string `json:"name"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, int64(2147483648), report.TotalAvailable)
	require.Len(t, report.Categories, 4)
	assert.Equal(t, "Documents", report.Categories[0].Name)
}

func TestEmptyTrashEndpoint(t *testing.T) {
	router := newTestRouter(t)
	token := bearerFor(t, "alice")

	w := doJSON(t, router, http.MethodDelete, "/api/trash", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
}
