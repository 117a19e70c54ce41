package store

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"arkive/models"
)

// MongoFolderStore implements FolderStore on a MongoDB collection.
type MongoFolderStore struct {
	collection *mongo.Collection
}

var _ FolderStore = (*MongoFolderStore)(nil)

func (s *MongoFolderStore) Get(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	var folder models.Folder
	err := s.collection.FindOne(ctx, bson.M{
		"_id":      id,
		"owner_id": ownerID,
	}).Decode(&folder)

	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("folder %s: %w", id, models.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &folder, nil
}

func (s *MongoFolderStore) Insert(ctx context.Context, folder *models.Folder) error {
	if _, err := s.collection.InsertOne(ctx, folder); err != nil {
		return fmt.Errorf("failed to insert folder: %w", err)
	}
	return nil
}

func (s *MongoFolderStore) Update(ctx context.Context, folder *models.Folder) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{
		"_id":      folder.ID,
		"owner_id": folder.OwnerID,
	}, folder)
	if err != nil {
		return fmt.Errorf("failed to update folder: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, models.ErrNotFound)
	}
	return nil
}

func (s *MongoFolderStore) Delete(ctx context.Context, id, ownerID string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{
		"_id":      id,
		"owner_id": ownerID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("folder %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *MongoFolderStore) ListByParent(ctx context.Context, ownerID string, parentID *string, includeTrashed bool) ([]models.Folder, error) {
	filter := bson.M{"owner_id": ownerID}
	if parentID != nil {
		filter["parent_id"] = *parentID
	} else {
		filter["parent_id"] = nil
	}
	if !includeTrashed {
		filter["is_trashed"] = false
	}
	return s.list(ctx, filter)
}

func (s *MongoFolderStore) ListStarred(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_starred": true,
		"is_trashed": false,
	})
}

func (s *MongoFolderStore) ListTrashed(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_trashed": true,
	})
}

func (s *MongoFolderStore) FindChild(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	filter := bson.M{
		"owner_id":   ownerID,
		"name":       name,
		"is_trashed": false,
	}
	if parentID != nil {
		filter["parent_id"] = *parentID
	} else {
		filter["parent_id"] = nil
	}

	var folder models.Folder
	err := s.collection.FindOne(ctx, filter).Decode(&folder)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("folder %q: %w", name, models.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &folder, nil
}

func (s *MongoFolderStore) Search(ctx context.Context, ownerID, q string) ([]models.Folder, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_trashed": false,
		"name":       bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"},
	})
}

func (s *MongoFolderStore) list(ctx context.Context, filter bson.M) ([]models.Folder, error) {
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer cursor.Close(ctx)

	var folders []models.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("failed to decode folders: %w", err)
	}
	return folders, nil
}
