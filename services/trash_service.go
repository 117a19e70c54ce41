package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"arkive/models"
	"arkive/store"
	"arkive/utils"
)

// TrashService implements the trash flag flips and the destructive cascades.
// Cascades delete remote blobs before metadata rows so a crash leaves
// recoverable rows rather than orphaned blobs the rows still point at.
type TrashService struct {
	files   store.FileStore
	folders store.FolderStore
	objects ObjectStore
}

// PurgeSummary counts the rows removed by a destructive operation.
type PurgeSummary struct {
	FilesDeleted   int `json:"filesDeleted"`
	FoldersDeleted int `json:"foldersDeleted"`
}

func NewTrashService(files store.FileStore, folders store.FolderStore, objects ObjectStore) *TrashService {
	return &TrashService{
		files:   files,
		folders: folders,
		objects: objects,
	}
}

// ToggleFileTrash flips the trash flag on a single file. Restoring a file
// whose folder was since deleted leaves it reachable from the root listing.
func (s *TrashService) ToggleFileTrash(ctx context.Context, ownerID, fileID string) (*models.File, error) {
	file, err := s.files.Get(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}
	file.IsTrashed = !file.IsTrashed
	file.UpdatedAt = time.Now().UTC()
	if err := s.files.Update(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// ToggleFolderTrash flips the trash flag on the folder itself. Descendants
// keep their own flags; they disappear from listings because the subtree
// root is no longer reachable.
func (s *TrashService) ToggleFolderTrash(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	folder, err := s.folders.Get(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	folder.IsTrashed = !folder.IsTrashed
	folder.UpdatedAt = time.Now().UTC()
	if err := s.folders.Update(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// DeleteFile permanently removes a single file. Unlike the cascades this is
// strict: a file without a remote object id is rejected, and a provider
// failure aborts before the row is touched.
func (s *TrashService) DeleteFile(ctx context.Context, ownerID, fileID string) (*models.File, error) {
	file, err := s.files.Get(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}
	if file.RemoteObjectID == "" {
		return nil, fmt.Errorf("%w: file has no remote object id", models.ErrValidation)
	}
	if err := s.objects.Delete(ctx, file.RemoteObjectID); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDependency, err)
	}
	if err := s.files.Delete(ctx, fileID, ownerID); err != nil {
		return nil, err
	}
	utils.Log.Info().
		Str("owner_id", ownerID).
		Str("file_id", fileID).
		Msg("file permanently deleted")
	return file, nil
}

// DeleteFolderTree permanently removes a folder and everything beneath it,
// trashed or not. Blob deletes are best effort; row deletes tolerate rows
// already gone.
func (s *TrashService) DeleteFolderTree(ctx context.Context, ownerID, folderID string) (*PurgeSummary, error) {
	if _, err := s.folders.Get(ctx, folderID, ownerID); err != nil {
		return nil, err
	}

	folderIDs := []string{folderID}
	var files []models.File

	visited := map[string]bool{folderID: true}
	queue := []string{folderID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		id := current
		children, err := s.folders.ListByParent(ctx, ownerID, &id, true)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			folderIDs = append(folderIDs, child.ID)
			queue = append(queue, child.ID)
		}

		contained, err := s.files.ListByFolder(ctx, ownerID, &id, true)
		if err != nil {
			return nil, err
		}
		files = append(files, contained...)
	}

	s.deleteBlobs(ctx, files)

	summary := &PurgeSummary{}
	for _, file := range files {
		if err := s.files.Delete(ctx, file.ID, ownerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		summary.FilesDeleted++
	}
	for _, id := range folderIDs {
		if err := s.folders.Delete(ctx, id, ownerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		summary.FoldersDeleted++
	}

	utils.Log.Info().
		Str("owner_id", ownerID).
		Str("folder_id", folderID).
		Int("files_deleted", summary.FilesDeleted).
		Int("folders_deleted", summary.FoldersDeleted).
		Msg("folder tree permanently deleted")
	return summary, nil
}

// EmptyTrash permanently removes every trashed file and every trashed folder
// subtree. The folder walk only descends into trashed children: a non-trashed
// folder inside a trashed one survives as an orphan row, matching the
// single-entity trash flag.
func (s *TrashService) EmptyTrash(ctx context.Context, ownerID string) (*PurgeSummary, error) {
	trashedFiles, err := s.files.ListTrashed(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	trashedFolders, err := s.folders.ListTrashed(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(trashedFiles) == 0 && len(trashedFolders) == 0 {
		return &PurgeSummary{}, nil
	}

	s.deleteBlobs(ctx, trashedFiles)

	summary := &PurgeSummary{}
	for _, file := range trashedFiles {
		if err := s.files.Delete(ctx, file.ID, ownerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		summary.FilesDeleted++
	}

	visited := make(map[string]bool)
	queue := make([]string, 0, len(trashedFolders))
	for _, folder := range trashedFolders {
		if !visited[folder.ID] {
			visited[folder.ID] = true
			queue = append(queue, folder.ID)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		id := current
		children, err := s.folders.ListByParent(ctx, ownerID, &id, true)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if !child.IsTrashed || visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			queue = append(queue, child.ID)
		}

		if err := s.folders.Delete(ctx, current, ownerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		summary.FoldersDeleted++
	}

	utils.Log.Info().
		Str("owner_id", ownerID).
		Int("files_deleted", summary.FilesDeleted).
		Int("folders_deleted", summary.FoldersDeleted).
		Msg("trash emptied")
	return summary, nil
}

// EmptyFileTrash permanently removes trashed files only, leaving trashed
// folders in place.
func (s *TrashService) EmptyFileTrash(ctx context.Context, ownerID string) (*PurgeSummary, error) {
	trashedFiles, err := s.files.ListTrashed(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(trashedFiles) == 0 {
		return &PurgeSummary{}, nil
	}

	s.deleteBlobs(ctx, trashedFiles)

	summary := &PurgeSummary{}
	for _, file := range trashedFiles {
		if err := s.files.Delete(ctx, file.ID, ownerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		summary.FilesDeleted++
	}
	return summary, nil
}

// deleteBlobs removes the remote objects concurrently. Individual failures
// are logged and swallowed so one stuck blob never blocks the rest of a
// purge.
func (s *TrashService) deleteBlobs(ctx context.Context, files []models.File) {
	g := new(errgroup.Group)
	for _, file := range files {
		if file.RemoteObjectID == "" {
			continue
		}
		file := file
		g.Go(func() error {
			if err := s.objects.Delete(ctx, file.RemoteObjectID); err != nil {
				utils.Log.Warn().
					Err(err).
					Str("file_id", file.ID).
					Str("object_id", file.RemoteObjectID).
					Msg("failed to delete remote object")
			}
			return nil
		})
	}
	g.Wait()
}
