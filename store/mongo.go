package store

import (
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	folderCollection = "folders"
	fileCollection   = "files"
)

// NewMongoFolderStore returns a FolderStore backed by the "folders"
// collection.
func NewMongoFolderStore(db *mongo.Database) *MongoFolderStore {
	return &MongoFolderStore{collection: db.Collection(folderCollection)}
}

// NewMongoFileStore returns a FileStore backed by the "files" collection.
func NewMongoFileStore(db *mongo.Database) *MongoFileStore {
	return &MongoFileStore{collection: db.Collection(fileCollection)}
}
