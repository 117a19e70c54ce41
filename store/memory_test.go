package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arkive/models"
)

func strPtr(s string) *string { return &s }

func newFolder(id, owner, name string, parent *string) *models.Folder {
	now := time.Now().UTC()
	return &models.Folder{
		ID:        id,
		OwnerID:   owner,
		ParentID:  parent,
		Name:      name,
		Path:      "/folders/" + owner + "/" + id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newFile(id, owner, name string, folder *string) *models.File {
	now := time.Now().UTC()
	return &models.File{
		ID:             id,
		OwnerID:        owner,
		FolderID:       folder,
		Name:           name,
		RemoteObjectID: "obj-" + id,
		Type:           "application/octet-stream",
		Size:           1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestFolderStoreOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFolderStore()

	require.NoError(t, s.Insert(ctx, newFolder("f1", "alice", "Docs", nil)))

	_, err := s.Get(ctx, "f1", "bob")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = s.Delete(ctx, "f1", "bob")
	assert.ErrorIs(t, err, models.ErrNotFound)

	folders, err := s.ListByParent(ctx, "bob", nil, false)
	require.NoError(t, err)
	assert.Empty(t, folders)

	got, err := s.Get(ctx, "f1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Docs", got.Name)
}

func TestFolderStoreListByParentHidesTrashed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFolderStore()

	require.NoError(t, s.Insert(ctx, newFolder("a", "alice", "Alpha", nil)))
	trashed := newFolder("b", "alice", "Beta", nil)
	trashed.IsTrashed = true
	require.NoError(t, s.Insert(ctx, trashed))

	visible, err := s.ListByParent(ctx, "alice", nil, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Alpha", visible[0].Name)

	all, err := s.ListByParent(ctx, "alice", nil, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFolderStoreListSortsByName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFolderStore()

	require.NoError(t, s.Insert(ctx, newFolder("1", "alice", "zeta", nil)))
	require.NoError(t, s.Insert(ctx, newFolder("2", "alice", "alpha", nil)))
	require.NoError(t, s.Insert(ctx, newFolder("3", "alice", "mid", nil)))

	folders, err := s.ListByParent(ctx, "alice", nil, false)
	require.NoError(t, err)
	require.Len(t, folders, 3)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, []string{folders[0].Name, folders[1].Name, folders[2].Name})
}

func TestFolderStoreFindChild(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFolderStore()

	require.NoError(t, s.Insert(ctx, newFolder("root", "alice", "Docs", nil)))
	require.NoError(t, s.Insert(ctx, newFolder("child", "alice", "Work", strPtr("root"))))

	got, err := s.FindChild(ctx, "alice", strPtr("root"), "Work")
	require.NoError(t, err)
	assert.Equal(t, "child", got.ID)

	_, err = s.FindChild(ctx, "alice", nil, "Work")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFolderStoreUpdateReplacesByID(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFolderStore()

	f := newFolder("f1", "alice", "Old", nil)
	require.NoError(t, s.Insert(ctx, f))

	f.Name = "New"
	require.NoError(t, s.Update(ctx, f))

	got, err := s.Get(ctx, "f1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	missing := newFolder("nope", "alice", "X", nil)
	assert.ErrorIs(t, s.Update(ctx, missing), models.ErrNotFound)
}

func TestFileStoreSearchCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFileStore()

	require.NoError(t, s.Insert(ctx, newFile("1", "alice", "Quarterly Report.pdf", nil)))
	require.NoError(t, s.Insert(ctx, newFile("2", "alice", "photo.png", nil)))
	trashed := newFile("3", "alice", "old report.pdf", nil)
	trashed.IsTrashed = true
	require.NoError(t, s.Insert(ctx, trashed))

	hits, err := s.Search(ctx, "alice", "report")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "1", hits[0].ID)
}

func TestFileStoreListRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFileStore()

	base := time.Now().UTC()
	for i := 0; i < 12; i++ {
		f := newFile(string(rune('a'+i)), "alice", "f", nil)
		f.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Insert(ctx, f))
	}
	trashed := newFile("z", "alice", "f", nil)
	trashed.CreatedAt = base.Add(time.Hour)
	trashed.IsTrashed = true
	require.NoError(t, s.Insert(ctx, trashed))

	recent, err := s.ListRecent(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, string(rune('a'+11)), recent[0].ID)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}
}

func TestFileStoreInsertCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryFileStore()

	f := newFile("1", "alice", "a.txt", nil)
	require.NoError(t, s.Insert(ctx, f))

	f.Name = "mutated.txt"

	got, err := s.Get(ctx, "1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.Name)
}
