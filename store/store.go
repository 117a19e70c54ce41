// Package store holds the persistence layer for folder and file records.
// Every read and write is scoped by owner id: a lookup for a record owned by
// someone else reports models.ErrNotFound, never a permission error. This is
// the application's only authorization boundary.
package store

import (
	"context"

	"arkive/models"
)

// FolderStore is the persistence contract for folder records.
type FolderStore interface {
	Get(ctx context.Context, id, ownerID string) (*models.Folder, error)
	Insert(ctx context.Context, folder *models.Folder) error
	// Update replaces the stored record matched by id and owner.
	Update(ctx context.Context, folder *models.Folder) error
	Delete(ctx context.Context, id, ownerID string) error

	// ListByParent returns the direct children of parentID (nil for root).
	// Trashed folders are excluded unless includeTrashed is set.
	ListByParent(ctx context.Context, ownerID string, parentID *string, includeTrashed bool) ([]models.Folder, error)
	// ListStarred returns starred, non-trashed folders regardless of parent.
	ListStarred(ctx context.Context, ownerID string) ([]models.Folder, error)
	// ListTrashed returns every trashed folder regardless of parent.
	ListTrashed(ctx context.Context, ownerID string) ([]models.Folder, error)
	// FindChild locates a non-trashed child of parentID by exact name.
	FindChild(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error)
	// Search returns non-trashed folders whose name contains q
	// (case-insensitive).
	Search(ctx context.Context, ownerID, q string) ([]models.Folder, error)
}

// FileStore is the persistence contract for file records.
type FileStore interface {
	Get(ctx context.Context, id, ownerID string) (*models.File, error)
	Insert(ctx context.Context, file *models.File) error
	Update(ctx context.Context, file *models.File) error
	Delete(ctx context.Context, id, ownerID string) error

	// ListByFolder returns the files directly inside folderID (nil for root).
	// Trashed files are excluded unless includeTrashed is set.
	ListByFolder(ctx context.Context, ownerID string, folderID *string, includeTrashed bool) ([]models.File, error)
	ListStarred(ctx context.Context, ownerID string) ([]models.File, error)
	ListTrashed(ctx context.Context, ownerID string) ([]models.File, error)
	// ListByOwner returns every non-trashed file of the owner regardless of
	// containment.
	ListByOwner(ctx context.Context, ownerID string) ([]models.File, error)
	// ListRecent returns up to limit non-trashed files, newest first.
	ListRecent(ctx context.Context, ownerID string, limit int) ([]models.File, error)
	Search(ctx context.Context, ownerID, q string) ([]models.File, error)
}
