package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const loadCollectionName = "load_entries"

// mongoLoadRepository implements repository.LoadRepository
type mongoLoadRepository struct {
	collection *mongo.Collection
}

// NewMongoLoadRepository creates a new load-history repository backed by MongoDB.
func NewMongoLoadRepository(db *mongo.Database) repository.LoadRepository {
	return &mongoLoadRepository{
		collection: db.Collection(loadCollectionName),
	}
}

// Create inserts a new load entry. The server sets id and timestamp.
func (r *mongoLoadRepository) Create(ctx context.Context, entry *domain.LoadEntry) (primitive.ObjectID, error) {
	if entry.StudentID == primitive.NilObjectID || entry.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("student ID and exercise ID are required")
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByStudentID retrieves all load entries for a student, oldest first.
// Consumers must not rely on this ordering for charting; the projector
// re-sorts unconditionally.
func (r *mongoLoadRepository) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.LoadEntry, error) {
	var entries []domain.LoadEntry
	filter := bson.M{"studentId": studentID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// EnsureLoadIndexes creates necessary indexes for the load_entries collection.
func EnsureLoadIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "exerciseId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
