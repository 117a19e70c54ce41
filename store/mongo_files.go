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

// MongoFileStore implements FileStore on a MongoDB collection.
type MongoFileStore struct {
	collection *mongo.Collection
}

var _ FileStore = (*MongoFileStore)(nil)

func (s *MongoFileStore) Get(ctx context.Context, id, ownerID string) (*models.File, error) {
	var file models.File
	err := s.collection.FindOne(ctx, bson.M{
		"_id":      id,
		"owner_id": ownerID,
	}).Decode(&file)

	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("file %s: %w", id, models.ErrNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &file, nil
}

func (s *MongoFileStore) Insert(ctx context.Context, file *models.File) error {
	if _, err := s.collection.InsertOne(ctx, file); err != nil {
		return fmt.Errorf("failed to insert file: %w", err)
	}
	return nil
}

func (s *MongoFileStore) Update(ctx context.Context, file *models.File) error {
	result, err := s.collection.ReplaceOne(ctx, bson.M{
		"_id":      file.ID,
		"owner_id": file.OwnerID,
	}, file)
	if err != nil {
		return fmt.Errorf("failed to update file: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("file %s: %w", file.ID, models.ErrNotFound)
	}
	return nil
}

func (s *MongoFileStore) Delete(ctx context.Context, id, ownerID string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{
		"_id":      id,
		"owner_id": ownerID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("file %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *MongoFileStore) ListByFolder(ctx context.Context, ownerID string, folderID *string, includeTrashed bool) ([]models.File, error) {
	filter := bson.M{"owner_id": ownerID}
	if folderID != nil {
		filter["folder_id"] = *folderID
	} else {
		filter["folder_id"] = nil
	}
	if !includeTrashed {
		filter["is_trashed"] = false
	}
	return s.list(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
}

func (s *MongoFileStore) ListStarred(ctx context.Context, ownerID string) ([]models.File, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_starred": true,
		"is_trashed": false,
	}, options.Find().SetSort(bson.M{"name": 1}))
}

func (s *MongoFileStore) ListTrashed(ctx context.Context, ownerID string) ([]models.File, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_trashed": true,
	}, options.Find().SetSort(bson.M{"name": 1}))
}

func (s *MongoFileStore) ListByOwner(ctx context.Context, ownerID string) ([]models.File, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_trashed": false,
	}, options.Find().SetSort(bson.M{"name": 1}))
}

func (s *MongoFileStore) ListRecent(ctx context.Context, ownerID string, limit int) ([]models.File, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_trashed": false,
	}, options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(int64(limit)))
}

func (s *MongoFileStore) Search(ctx context.Context, ownerID, q string) ([]models.File, error) {
	return s.list(ctx, bson.M{
		"owner_id":   ownerID,
		"is_trashed": false,
		"name":       bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"},
	}, options.Find().SetSort(bson.M{"name": 1}))
}

func (s *MongoFileStore) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.File, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer cursor.Close(ctx)

	var files []models.File
	if err = cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}
	return files, nil
}
