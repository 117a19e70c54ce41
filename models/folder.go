package models

import "time"

// Folder is a node in an owner's folder tree. ParentID nil means the folder
// sits at the root level. Path is a materialized display path; it is never
// used for authorization or traversal and may go stale for descendants after
// a move.
type Folder struct {
	ID        string    `bson:"_id" json:"id"`
	OwnerID   string    `bson:"owner_id" json:"ownerId"`
	ParentID  *string   `bson:"parent_id,omitempty" json:"parentId"`
	Name      string    `bson:"name" json:"name"`
	Path      string    `bson:"path" json:"path"`
	IsStarred bool      `bson:"is_starred" json:"isStarred"`
	IsTrashed bool      `bson:"is_trashed" json:"isTrashed"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
