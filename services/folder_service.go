package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"arkive/models"
	"arkive/store"
	"arkive/utils"
)

// FolderService owns folder tree mutations and the materialized display
// path. Paths are id-based: moving a folder rewrites only its own path, not
// its descendants'. That staleness is accepted; paths are display hints.
type FolderService struct {
	folders store.FolderStore
	files   store.FileStore
}

// Breadcrumb is one hop of an ancestor chain.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewFolderService(folders store.FolderStore, files store.FileStore) *FolderService {
	return &FolderService{
		folders: folders,
		files:   files,
	}
}

func rootFolderPath(ownerID, folderID string) string {
	return "/folders/" + ownerID + "/" + folderID
}

// normalizeParent treats an empty string like an absent parent.
func normalizeParent(parentID *string) *string {
	if parentID != nil && *parentID == "" {
		return nil
	}
	return parentID
}

// CreateFolder inserts a folder under parentID, or at the root when parentID
// is nil.
func (s *FolderService) CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", models.ErrValidation)
	}

	parentID = normalizeParent(parentID)

	id := uuid.NewString()
	path := rootFolderPath(ownerID, id)
	if parentID != nil {
		parent, err := s.folders.Get(ctx, *parentID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
		path = parent.Path + "/" + id
	}

	now := time.Now().UTC()
	folder := &models.Folder{
		ID:        id,
		OwnerID:   ownerID,
		ParentID:  parentID,
		Name:      name,
		Path:      path,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folders.Insert(ctx, folder); err != nil {
		return nil, err
	}

	utils.Log.Info().
		Str("owner_id", ownerID).
		Str("folder_id", folder.ID).
		Str("path", folder.Path).
		Msg("folder created")

	return folder, nil
}

// UpdateFolder renames and/or moves a folder. parentSet distinguishes "move
// to root" (parentID nil) from "leave the parent alone" (parentSet false).
// The path is recomputed only when the parent actually changes.
func (s *FolderService) UpdateFolder(ctx context.Context, ownerID, folderID string, name *string, parentID *string, parentSet bool) (*models.Folder, error) {
	folder, err := s.folders.Get(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: folder name is required", models.ErrValidation)
		}
		folder.Name = trimmed
	}

	if parentSet {
		newParent := normalizeParent(parentID)
		if !sameParentID(folder.ParentID, newParent) {
			if newParent != nil {
				parent, err := s.folders.Get(ctx, *newParent, ownerID)
				if err != nil {
					return nil, fmt.Errorf("parent folder: %w", err)
				}
				folder.Path = parent.Path + "/" + folder.ID
			} else {
				folder.Path = rootFolderPath(ownerID, folder.ID)
			}
			folder.ParentID = newParent
		}
	}

	folder.UpdatedAt = time.Now().UTC()
	if err := s.folders.Update(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func sameParentID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// GetFolder fetches a single folder for the owner.
func (s *FolderService) GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	return s.folders.Get(ctx, folderID, ownerID)
}

// ListChildren lists the non-trashed folders directly under parentID (nil
// for root).
func (s *FolderService) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	return s.folders.ListByParent(ctx, ownerID, normalizeParent(parentID), false)
}

// ListStarred lists starred, non-trashed folders regardless of containment.
func (s *FolderService) ListStarred(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.folders.ListStarred(ctx, ownerID)
}

// ListTrashed lists every trashed folder flat, regardless of containment.
func (s *FolderService) ListTrashed(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.folders.ListTrashed(ctx, ownerID)
}

// ToggleStar flips the starred flag.
func (s *FolderService) ToggleStar(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	folder, err := s.folders.Get(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	folder.IsStarred = !folder.IsStarred
	folder.UpdatedAt = time.Now().UTC()
	if err := s.folders.Update(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Ancestors walks parent links from folderID to the root, returning the
// chain root-first. A broken link truncates the chain instead of failing; a
// revisited id (possible after an unchecked reparent created a cycle)
// terminates the walk.
func (s *FolderService) Ancestors(ctx context.Context, ownerID, folderID string) ([]Breadcrumb, error) {
	var chain []Breadcrumb
	seen := make(map[string]bool)

	current := &folderID
	for current != nil && !seen[*current] {
		seen[*current] = true
		folder, err := s.folders.Get(ctx, *current, ownerID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				break
			}
			return nil, err
		}
		chain = append([]Breadcrumb{{ID: folder.ID, Name: folder.Name}}, chain...)
		current = folder.ParentID
	}

	return chain, nil
}
