package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"arkive/models"
)

// MemoryFolderStore is a mutex-guarded in-memory FolderStore. It backs unit
// tests and local development; the Mongo stores are the production
// implementations.
type MemoryFolderStore struct {
	mu      sync.RWMutex
	folders map[string]models.Folder
}

// MemoryFileStore is the in-memory FileStore counterpart.
type MemoryFileStore struct {
	mu    sync.RWMutex
	files map[string]models.File
}

var (
	_ FolderStore = (*MemoryFolderStore)(nil)
	_ FileStore   = (*MemoryFileStore)(nil)
)

func NewMemoryFolderStore() *MemoryFolderStore {
	return &MemoryFolderStore{folders: make(map[string]models.Folder)}
}

func NewMemoryFileStore() *MemoryFileStore {
	return &MemoryFileStore{files: make(map[string]models.File)}
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *MemoryFolderStore) Get(_ context.Context, id, ownerID string) (*models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folder, ok := s.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, models.ErrNotFound)
	}
	return &folder, nil
}

func (s *MemoryFolderStore) Insert(_ context.Context, folder *models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[folder.ID]; ok {
		return fmt.Errorf("folder %s already exists", folder.ID)
	}
	s.folders[folder.ID] = *folder
	return nil
}

func (s *MemoryFolderStore) Update(_ context.Context, folder *models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.folders[folder.ID]
	if !ok || existing.OwnerID != folder.OwnerID {
		return fmt.Errorf("folder %s: %w", folder.ID, models.ErrNotFound)
	}
	s.folders[folder.ID] = *folder
	return nil
}

func (s *MemoryFolderStore) Delete(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.folders[id]
	if !ok || existing.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, models.ErrNotFound)
	}
	delete(s.folders, id)
	return nil
}

func (s *MemoryFolderStore) ListByParent(_ context.Context, ownerID string, parentID *string, includeTrashed bool) ([]models.Folder, error) {
	return s.filter(func(f models.Folder) bool {
		return f.OwnerID == ownerID && sameParent(f.ParentID, parentID) && (includeTrashed || !f.IsTrashed)
	}), nil
}

func (s *MemoryFolderStore) ListStarred(_ context.Context, ownerID string) ([]models.Folder, error) {
	return s.filter(func(f models.Folder) bool {
		return f.OwnerID == ownerID && f.IsStarred && !f.IsTrashed
	}), nil
}

func (s *MemoryFolderStore) ListTrashed(_ context.Context, ownerID string) ([]models.Folder, error) {
	return s.filter(func(f models.Folder) bool {
		return f.OwnerID == ownerID && f.IsTrashed
	}), nil
}

func (s *MemoryFolderStore) FindChild(_ context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	matches := s.filter(func(f models.Folder) bool {
		return f.OwnerID == ownerID && sameParent(f.ParentID, parentID) && f.Name == name && !f.IsTrashed
	})
	if len(matches) == 0 {
		return nil, fmt.Errorf("folder %q: %w", name, models.ErrNotFound)
	}
	return &matches[0], nil
}

func (s *MemoryFolderStore) Search(_ context.Context, ownerID, q string) ([]models.Folder, error) {
	needle := strings.ToLower(q)
	return s.filter(func(f models.Folder) bool {
		return f.OwnerID == ownerID && !f.IsTrashed && strings.Contains(strings.ToLower(f.Name), needle)
	}), nil
}

func (s *MemoryFolderStore) filter(keep func(models.Folder) bool) []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Folder
	for _, f := range s.folders {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *MemoryFileStore) Get(_ context.Context, id, ownerID string) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, ok := s.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, fmt.Errorf("file %s: %w", id, models.ErrNotFound)
	}
	return &file, nil
}

func (s *MemoryFileStore) Insert(_ context.Context, file *models.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[file.ID]; ok {
		return fmt.Errorf("file %s already exists", file.ID)
	}
	s.files[file.ID] = *file
	return nil
}

func (s *MemoryFileStore) Update(_ context.Context, file *models.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.files[file.ID]
	if !ok || existing.OwnerID != file.OwnerID {
		return fmt.Errorf("file %s: %w", file.ID, models.ErrNotFound)
	}
	s.files[file.ID] = *file
	return nil
}

func (s *MemoryFileStore) Delete(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.files[id]
	if !ok || existing.OwnerID != ownerID {
		return fmt.Errorf("file %s: %w", id, models.ErrNotFound)
	}
	delete(s.files, id)
	return nil
}

func (s *MemoryFileStore) ListByFolder(_ context.Context, ownerID string, folderID *string, includeTrashed bool) ([]models.File, error) {
	return s.filter(byName, func(f models.File) bool {
		return f.OwnerID == ownerID && sameParent(f.FolderID, folderID) && (includeTrashed || !f.IsTrashed)
	}), nil
}

func (s *MemoryFileStore) ListStarred(_ context.Context, ownerID string) ([]models.File, error) {
	return s.filter(byName, func(f models.File) bool {
		return f.OwnerID == ownerID && f.IsStarred && !f.IsTrashed
	}), nil
}

func (s *MemoryFileStore) ListTrashed(_ context.Context, ownerID string) ([]models.File, error) {
	return s.filter(byName, func(f models.File) bool {
		return f.OwnerID == ownerID && f.IsTrashed
	}), nil
}

func (s *MemoryFileStore) ListByOwner(_ context.Context, ownerID string) ([]models.File, error) {
	return s.filter(byName, func(f models.File) bool {
		return f.OwnerID == ownerID && !f.IsTrashed
	}), nil
}

func (s *MemoryFileStore) ListRecent(_ context.Context, ownerID string, limit int) ([]models.File, error) {
	files := s.filter(byCreatedDesc, func(f models.File) bool {
		return f.OwnerID == ownerID && !f.IsTrashed
	})
	if len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

func (s *MemoryFileStore) Search(_ context.Context, ownerID, q string) ([]models.File, error) {
	needle := strings.ToLower(q)
	return s.filter(byName, func(f models.File) bool {
		return f.OwnerID == ownerID && !f.IsTrashed && strings.Contains(strings.ToLower(f.Name), needle)
	}), nil
}

func byName(a, b models.File) bool { return a.Name < b.Name }

func byCreatedDesc(a, b models.File) bool { return a.CreatedAt.After(b.CreatedAt) }

func (s *MemoryFileStore) filter(less func(a, b models.File) bool, keep func(models.File) bool) []models.File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.File
	for _, f := range s.files {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
