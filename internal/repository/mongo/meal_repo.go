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

const mealCollectionName = "meals"

// mongoMealRepository implements repository.MealRepository
type mongoMealRepository struct {
	collection *mongo.Collection
}

// NewMongoMealRepository creates a new diet-plan repository backed by MongoDB.
func NewMongoMealRepository(db *mongo.Database) repository.MealRepository {
	return &mongoMealRepository{
		collection: db.Collection(mealCollectionName),
	}
}

// Create inserts a new meal into the database.
func (r *mongoMealRepository) Create(ctx context.Context, meal *domain.Meal) (primitive.ObjectID, error) {
	if meal.StudentID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("student ID is required")
	}
	if !domain.ValidWeekday(meal.Weekday) || !domain.ValidMealType(meal.MealType) {
		return primitive.NilObjectID, errors.New("invalid weekday or meal type")
	}

	meal.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	meal.CreatedAt = now
	meal.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, meal)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a meal by its ID.
func (r *mongoMealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// GetByStudentID retrieves all meals for a student, ordered by time of day.
func (r *mongoMealRepository) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Meal, error) {
	var meals []domain.Meal
	filter := bson.M{"studentId": studentID}
	findOptions := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return meals, nil
}

// Update modifies an existing meal. The owning student id is never changed.
func (r *mongoMealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	if meal.ID == primitive.NilObjectID {
		return errors.New("meal ID is required for update")
	}
	if !domain.ValidWeekday(meal.Weekday) || !domain.ValidMealType(meal.MealType) {
		return errors.New("invalid weekday or meal type")
	}

	filter := bson.M{"_id": meal.ID}
	update := bson.M{
		"$set": bson.M{
			"weekday":     meal.Weekday,
			"mealType":    meal.MealType,
			"time":        meal.Time,
			"description": meal.Description,
			"updatedAt":   time.Now().UTC(),
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

// Delete removes a meal, requiring the owning student id to match.
func (r *mongoMealRepository) Delete(ctx context.Context, id, studentID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "studentId": studentID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureMealIndexes creates necessary indexes for the meals collection.
func EnsureMealIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "weekday", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
