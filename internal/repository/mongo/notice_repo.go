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

const noticeCollectionName = "notices"

// mongoNoticeRepository implements repository.NoticeRepository
type mongoNoticeRepository struct {
	collection *mongo.Collection
}

// NewMongoNoticeRepository creates a new notice repository backed by MongoDB.
func NewMongoNoticeRepository(db *mongo.Database) repository.NoticeRepository {
	return &mongoNoticeRepository{
		collection: db.Collection(noticeCollectionName),
	}
}

// Create inserts a new notice into the database.
func (r *mongoNoticeRepository) Create(ctx context.Context, notice *domain.Notice) (primitive.ObjectID, error) {
	if notice.ProfessionalID == primitive.NilObjectID || notice.StudentID == primitive.NilObjectID ||
		notice.AuthorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("professional, student, and author IDs are required")
	}
	if notice.Message == "" {
		return primitive.NilObjectID, errors.New("notice message cannot be empty")
	}
	if notice.Severity == "" {
		notice.Severity = domain.SeverityNormal
	}

	notice.ID = primitive.NewObjectID()
	notice.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, notice)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a notice by its ID.
func (r *mongoNoticeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Notice, error) {
	var notice domain.Notice
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &notice, nil
}

// GetByStudentID retrieves all notices of a student's link, newest first.
func (r *mongoNoticeRepository) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Notice, error) {
	var notices []domain.Notice
	filter := bson.M{"studentId": studentID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notices); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return notices, nil
}

// UpdateSeverity patches only the severity field of a notice.
func (r *mongoNoticeRepository) UpdateSeverity(ctx context.Context, id primitive.ObjectID, severity domain.NoticeSeverity) error {
	if !domain.ValidNoticeSeverity(severity) {
		return errors.New("invalid notice severity")
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"severity": severity},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkRead flips the read flag. The studentId filter guarantees only the
// recipient's own notice can be marked.
func (r *mongoNoticeRepository) MarkRead(ctx context.Context, id, studentID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "studentId": studentID}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"read": true},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a notice by id. Authorization (author or professional party)
// is checked at the service layer before this is called.
func (r *mongoNoticeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureNoticeIndexes creates necessary indexes for the notices collection.
func EnsureNoticeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "read", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
