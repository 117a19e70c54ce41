package models

import (
	"strings"
	"time"
)

// File is the metadata record for an uploaded blob. The bytes themselves live
// in the remote object store under RemoteObjectID; legacy rows may lack the
// handle. FolderID nil means the file sits at the root level.
type File struct {
	ID             string    `bson:"_id" json:"id"`
	OwnerID        string    `bson:"owner_id" json:"ownerId"`
	FolderID       *string   `bson:"folder_id,omitempty" json:"folderId"`
	Name           string    `bson:"name" json:"name"`
	RemoteObjectID string    `bson:"remote_object_id,omitempty" json:"remoteObjectId,omitempty"`
	URL            string    `bson:"url" json:"url"`
	ThumbnailURL   string    `bson:"thumbnail_url,omitempty" json:"thumbnailUrl,omitempty"`
	Type           string    `bson:"type" json:"type"`
	Size           int64     `bson:"size" json:"size"`
	Width          int       `bson:"width,omitempty" json:"width,omitempty"`
	Height         int       `bson:"height,omitempty" json:"height,omitempty"`
	IsStarred      bool      `bson:"is_starred" json:"isStarred"`
	IsTrashed      bool      `bson:"is_trashed" json:"isTrashed"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// BaseName returns the display name: the substring after the last path
// separator. Bulk folder uploads store the slash-separated relative path in
// Name.
func (f *File) BaseName() string {
	name := f.Name
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Extension returns the lowercased extension of the base name without the
// dot, or "" when the name has none.
func (f *File) Extension() string {
	return ExtensionOf(f.BaseName())
}

// ExtensionOf extracts the lowercased trailing extension of a filename
// without the leading dot.
func ExtensionOf(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
