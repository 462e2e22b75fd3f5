package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// EnrollmentRepository represents the MongoDB implementation of the IEnrollmentRepository interface.
type EnrollmentRepository struct {
	collection *mongo.Collection
}

// NewEnrollmentRepository creates and returns a new EnrollmentRepository instance.
func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{
		collection: db.Collection("enrollments"),
	}
}

// check if EnrollmentRepository implements the IEnrollmentRepository
var _ contract.IEnrollmentRepository = (*EnrollmentRepository)(nil)

// EnsureIndexes creates the unique (user_id, course_id) index that
// backs enrollment uniqueness. Call once at startup.
func (r *EnrollmentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "course_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create enrollment index: %w", err)
	}
	return nil
}

// CreateEnrollment inserts an enrollment record. A duplicate
// (user, course) pair is reported as apperr.ErrAlreadyEnrolled.
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, enrollment *entity.Enrollment) error {
	_, err := r.collection.InsertOne(ctx, enrollment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrollment record: %w", err)
	}
	return nil
}

// DeleteEnrollment removes the enrollment for the (user, course) pair
// and reports whether a record was actually deleted.
func (r *EnrollmentRepository) DeleteEnrollment(ctx context.Context, userID, courseID string) (bool, error) {
	filter := bson.M{"user_id": userID, "course_id": courseID}
	res, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to delete enrollment: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// GetEnrollment retrieves the enrollment by a specific user in a
// specific course, or nil when absent.
func (r *EnrollmentRepository) GetEnrollment(ctx context.Context, userID, courseID string) (*entity.Enrollment, error) {
	var enrollment entity.Enrollment
	filter := bson.M{"user_id": userID, "course_id": courseID}

	err := r.collection.FindOne(ctx, filter).Decode(&enrollment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve enrollment: %w", err)
	}
	return &enrollment, nil
}

// ListCourseIDsByUser returns the course ids a user is enrolled in.
func (r *EnrollmentRepository) ListCourseIDsByUser(ctx context.Context, userID string) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	defer cursor.Close(ctx)

	var enrollments []entity.Enrollment
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, fmt.Errorf("failed to decode enrollments: %w", err)
	}

	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		ids = append(ids, e.CourseID)
	}
	return ids, nil
}

// CountByCourse counts the enrollment records for a course.
func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return 0, fmt.Errorf("failed to count enrollments: %w", err)
	}
	return count, nil
}
