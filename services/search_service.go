package services

import (
	"context"
	"strings"

	"arkive/models"
	"arkive/store"
)

// SearchService runs substring name lookups across both entity kinds,
// excluding trashed items.
type SearchService struct {
	files   store.FileStore
	folders store.FolderStore
}

// SearchResult holds both halves of a query. Slices are never nil so the
// JSON encoding always carries arrays.
type SearchResult struct {
	Files   []models.File   `json:"files"`
	Folders []models.Folder `json:"folders"`
}

func NewSearchService(files store.FileStore, folders store.FolderStore) *SearchService {
	return &SearchService{files: files, folders: folders}
}

// Search matches names case-insensitively. A blank query returns empty
// results rather than everything.
func (s *SearchService) Search(ctx context.Context, ownerID, query string) (*SearchResult, error) {
	result := &SearchResult{
		Files:   []models.File{},
		Folders: []models.Folder{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, nil
	}

	files, err := s.files.Search(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}
	folders, err := s.folders.Search(ctx, ownerID, query)
	if err != nil {
		return nil, err
	}

	if files != nil {
		result.Files = files
	}
	if folders != nil {
		result.Folders = folders
	}
	return result, nil
}
