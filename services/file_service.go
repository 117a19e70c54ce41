package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"arkive/models"
	"arkive/store"
	"arkive/utils"
)

// FileService owns file metadata mutations and delegates blob storage to the
// ObjectStore port.
type FileService struct {
	files   store.FileStore
	folders store.FolderStore
	objects ObjectStore
}

// Upload describes one incoming payload. Size is the client-declared length;
// when it is zero or negative the measured payload length is stored instead.
type Upload struct {
	Name        string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// BatchEntry is one item of a bulk folder upload: the slash-separated
// relative path ending in the leaf filename, plus the payload.
type BatchEntry struct {
	RelativePath string
	Size         int64
	ContentType  string
	Reader       io.Reader
}

// BatchResult summarizes a bulk folder upload.
type BatchResult struct {
	FoldersCreated int           `json:"foldersCreated"`
	FilesUploaded  int           `json:"filesUploaded"`
	Files          []models.File `json:"files"`
}

func NewFileService(files store.FileStore, folders store.FolderStore, objects ObjectStore) *FileService {
	return &FileService{
		files:   files,
		folders: folders,
		objects: objects,
	}
}

func remoteFolderPath(ownerID string, folderID *string) string {
	if folderID != nil {
		return "/arkive/" + ownerID + "/folders/" + *folderID
	}
	return "/arkive/" + ownerID
}

// uniqueObjectName keeps the original extension but replaces the name so
// concurrent uploads of equally-named files never collide remotely.
func uniqueObjectName(filename string) string {
	if ext := models.ExtensionOf(filename); ext != "" {
		return uuid.NewString() + "." + ext
	}
	return uuid.NewString()
}

func fallbackType(contentType, filename string) string {
	if contentType != "" {
		return contentType
	}
	if ext := models.ExtensionOf(filename); ext != "" {
		return "application/" + ext
	}
	return "application/octet-stream"
}

// UploadFile stores the blob remotely, then inserts the metadata record. A
// provider failure aborts before any database write.
func (s *FileService) UploadFile(ctx context.Context, ownerID string, folderID *string, up Upload) (*models.File, error) {
	if up.Name == "" {
		return nil, fmt.Errorf("%w: no file provided", models.ErrValidation)
	}

	folderID = normalizeParent(folderID)
	if folderID != nil {
		if _, err := s.folders.Get(ctx, *folderID, ownerID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	result, err := s.objects.Upload(ctx, up.Reader, uniqueObjectName(up.Name), remoteFolderPath(ownerID, folderID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDependency, err)
	}

	size := up.Size
	if size <= 0 {
		size = result.Size
	}

	now := time.Now().UTC()
	file := &models.File{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		FolderID:       folderID,
		Name:           up.Name,
		RemoteObjectID: result.ObjectID,
		URL:            result.URL,
		ThumbnailURL:   result.ThumbnailURL,
		Type:           fallbackType(up.ContentType, up.Name),
		Size:           size,
		Width:          result.Width,
		Height:         result.Height,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.files.Insert(ctx, file); err != nil {
		return nil, err
	}

	utils.Log.Info().
		Str("owner_id", ownerID).
		Str("file_id", file.ID).
		Int64("size", file.Size).
		Msg("file uploaded")

	return file, nil
}

// UploadFolder uploads a batch of files keyed by relative path, lazily
// resolving or creating each folder chain. Resolved chains are cached per
// batch so repeated path prefixes are not re-walked. Entries with an empty
// name or zero size are skipped with a warning; the batch fails only when
// nothing ends up uploaded.
func (s *FileService) UploadFolder(ctx context.Context, ownerID string, parentID *string, entries []BatchEntry) (*BatchResult, error) {
	parentID = normalizeParent(parentID)
	if parentID != nil {
		if _, err := s.folders.Get(ctx, *parentID, ownerID); err != nil {
			return nil, fmt.Errorf("parent folder: %w", err)
		}
	}

	folderCache := make(map[string]string)
	result := &BatchResult{}

	for _, entry := range entries {
		parts := splitPathSegments(entry.RelativePath)
		if len(parts) == 0 {
			continue
		}
		leaf := parts[len(parts)-1]
		folderParts := parts[:len(parts)-1]

		if leaf == "" || entry.Size == 0 {
			utils.Log.Warn().
				Str("owner_id", ownerID).
				Str("relative_path", entry.RelativePath).
				Msg("skipping invalid batch entry")
			continue
		}

		target := parentID
		if len(folderParts) > 0 {
			key := strings.Join(folderParts, "/")
			if id, ok := folderCache[key]; ok {
				target = &id
			} else {
				id, err := s.resolveFolderChain(ctx, ownerID, parentID, folderParts)
				if err != nil {
					return nil, err
				}
				folderCache[key] = id
				target = &id
			}
		}
		if target == nil {
			utils.Log.Warn().
				Str("owner_id", ownerID).
				Str("relative_path", entry.RelativePath).
				Msg("skipping batch entry without a target folder")
			continue
		}

		file, err := s.UploadFile(ctx, ownerID, target, Upload{
			Name:        leaf,
			Size:        entry.Size,
			ContentType: entry.ContentType,
			Reader:      entry.Reader,
		})
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, *file)
		result.FilesUploaded++
	}

	if result.FilesUploaded == 0 {
		return nil, fmt.Errorf("%w: no valid files provided", models.ErrValidation)
	}
	result.FoldersCreated = len(folderCache)
	return result, nil
}

func splitPathSegments(path string) []string {
	var parts []string
	for _, p := range strings.Split(strings.ReplaceAll(path, `\`, "/"), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// resolveFolderChain walks the named segments under parentID, reusing
// existing folders and creating the missing tail.
func (s *FileService) resolveFolderChain(ctx context.Context, ownerID string, parentID *string, segments []string) (string, error) {
	current := parentID
	for _, name := range segments {
		existing, err := s.folders.FindChild(ctx, ownerID, current, name)
		if err == nil {
			id := existing.ID
			current = &id
			continue
		}

		id := uuid.NewString()
		path := rootFolderPath(ownerID, id)
		if current != nil {
			parent, err := s.folders.Get(ctx, *current, ownerID)
			if err != nil {
				return "", fmt.Errorf("parent folder: %w", err)
			}
			path = parent.Path + "/" + id
		}

		now := time.Now().UTC()
		folder := &models.Folder{
			ID:        id,
			OwnerID:   ownerID,
			ParentID:  current,
			Name:      name,
			Path:      path,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.folders.Insert(ctx, folder); err != nil {
			return "", fmt.Errorf("failed to create folder %q: %w", name, err)
		}
		current = &id
	}

	if current == nil {
		return "", fmt.Errorf("%w: empty folder path", models.ErrValidation)
	}
	return *current, nil
}

// MoveFile reparents a file. parentSet distinguishes "move to root" from
// "leave alone". Files carry no path field, so only folderId changes.
func (s *FileService) MoveFile(ctx context.Context, ownerID, fileID string, folderID *string, parentSet bool) (*models.File, error) {
	file, err := s.files.Get(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}

	if parentSet {
		target := normalizeParent(folderID)
		if target != nil {
			if _, err := s.folders.Get(ctx, *target, ownerID); err != nil {
				return nil, fmt.Errorf("parent folder: %w", err)
			}
		}
		file.FolderID = target
	}

	file.UpdatedAt = time.Now().UTC()
	if err := s.files.Update(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// ToggleStar flips the starred flag.
func (s *FileService) ToggleStar(ctx context.Context, ownerID, fileID string) (*models.File, error) {
	file, err := s.files.Get(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}
	file.IsStarred = !file.IsStarred
	file.UpdatedAt = time.Now().UTC()
	if err := s.files.Update(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// ListByFolder lists the non-trashed files directly inside folderID (nil for
// root).
func (s *FileService) ListByFolder(ctx context.Context, ownerID string, folderID *string) ([]models.File, error) {
	return s.files.ListByFolder(ctx, ownerID, normalizeParent(folderID), false)
}

func (s *FileService) ListStarred(ctx context.Context, ownerID string) ([]models.File, error) {
	return s.files.ListStarred(ctx, ownerID)
}

func (s *FileService) ListTrashed(ctx context.Context, ownerID string) ([]models.File, error) {
	return s.files.ListTrashed(ctx, ownerID)
}

const recentFileLimit = 10

// Recent returns up to ten non-trashed files, newest first.
func (s *FileService) Recent(ctx context.Context, ownerID string) ([]models.File, error) {
	return s.files.ListRecent(ctx, ownerID, recentFileLimit)
}
