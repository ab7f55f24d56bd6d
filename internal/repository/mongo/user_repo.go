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

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email and role are required")
	}

	// Profile provisioning passes a preset ID matching the auth identity.
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// AddStudentToProfessional adds a student's ID to a professional's StudentIDs array.
func (r *mongoUserRepository) AddStudentToProfessional(ctx context.Context, professionalID, studentID primitive.ObjectID) error {
	filter := bson.M{"_id": professionalID, "role": domain.RoleProfessional}
	update := bson.M{
		"$addToSet": bson.M{"studentIds": studentID}, // $addToSet prevents duplicates
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveStudentFromProfessional pulls a student's ID from the professional's list.
func (r *mongoUserRepository) RemoveStudentFromProfessional(ctx context.Context, professionalID, studentID primitive.ObjectID) error {
	filter := bson.M{"_id": professionalID, "role": domain.RoleProfessional}
	update := bson.M{
		"$pull": bson.M{"studentIds": studentID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetProfessionalForStudent sets the ProfessionalID field for a student user.
func (r *mongoUserRepository) SetProfessionalForStudent(ctx context.Context, studentID, professionalID primitive.ObjectID) error {
	filter := bson.M{"_id": studentID, "role": domain.RoleStudent}
	update := bson.M{
		"$set": bson.M{
			"professionalId": professionalID,
			"updatedAt":      time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ClearProfessionalForStudent removes the student's professional link.
func (r *mongoUserRepository) ClearProfessionalForStudent(ctx context.Context, studentID primitive.ObjectID) error {
	filter := bson.M{"_id": studentID, "role": domain.RoleStudent}
	update := bson.M{
		"$unset": bson.M{"professionalId": ""},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetStudentsByProfessionalID retrieves all students linked to a professional.
func (r *mongoUserRepository) GetStudentsByProfessionalID(ctx context.Context, professionalID primitive.ObjectID) ([]domain.User, error) {
	professional, err := r.GetByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if !professional.IsProfessional() {
		return nil, errors.New("user is not a professional")
	}

	if len(professional.StudentIDs) == 0 {
		return []domain.User{}, nil
	}

	var students []domain.User
	filter := bson.M{"_id": bson.M{"$in": professional.StudentIDs}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// UpdateStudentSettings patches only the provided settings fields on a student
// profile. Other fields, including concurrently-changed ones, are untouched.
func (r *mongoUserRepository) UpdateStudentSettings(ctx context.Context, studentID primitive.ObjectID, settings repository.StudentSettings) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if settings.Goal != nil {
		set["goal"] = *settings.Goal
	}
	if settings.TargetWeight != nil {
		set["targetWeight"] = *settings.TargetWeight
	}
	if settings.Status != nil {
		set["status"] = *settings.Status
	}

	filter := bson.M{"_id": studentID, "role": domain.RoleStudent}
	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "professionalId", Value: 1}},
			Options: options.Index().SetSparse(true), // only students carry it
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
