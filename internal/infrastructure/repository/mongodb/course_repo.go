package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// CourseRepository represents the MongoDB implementation of the ICourseRepository interface.
type CourseRepository struct {
	collection *mongo.Collection
}

// NewCourseRepository creates and returns a new CourseRepository instance.
func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{
		collection: db.Collection("courses"),
	}
}

// check if CourseRepository implements the ICourseRepository
var _ contract.ICourseRepository = (*CourseRepository)(nil)

// buildCourseFilterAndSort creates a BSON filter and a sort document
// based on CourseFilterOptions. Reads only ever see published courses.
func buildCourseFilterAndSort(opts *contract.CourseFilterOptions) (bson.M, bson.M) {
	filter := bson.M{"is_published": true}

	if opts.Category != "" {
		filter["category"] = opts.Category
	}
	if opts.Level != "" {
		filter["level"] = opts.Level
	}

	// Filter by price range, bounds inclusive
	priceFilter := bson.M{}
	if opts.MinPrice != nil {
		priceFilter["$gte"] = *opts.MinPrice
	}
	if opts.MaxPrice != nil {
		priceFilter["$lte"] = *opts.MaxPrice
	}
	if len(priceFilter) > 0 {
		filter["price"] = priceFilter
	}

	var sortOrder int = -1 // default desc
	if opts.SortOrder == "asc" {
		sortOrder = 1
	}

	sortKey := opts.SortBy
	switch sortKey {
	case "", "created_at":
		sortKey = "created_at"
	case "rating":
		sortKey = "rating"
	case "students_enrolled":
		sortKey = "students_enrolled"
	case "price":
		sortKey = "price"
	default:
		sortKey = "created_at"
	}

	return filter, bson.M{sortKey: sortOrder}
}

// CreateCourse inserts a new course record into the database.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *entity.Course) error {
	if course.Syllabus == nil {
		course.Syllabus = []string{}
	}
	if course.Prerequisites == nil {
		course.Prerequisites = []string{}
	}
	if course.Tags == nil {
		course.Tags = []string{}
	}
	_, err := r.collection.InsertOne(ctx, course)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a single published course by its unique id.
func (r *CourseRepository) GetCourseByID(ctx context.Context, courseID string) (*entity.Course, error) {
	var course entity.Course
	filter := bson.M{"_id": courseID, "is_published": true}

	err := r.collection.FindOne(ctx, filter).Decode(&course)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve course: %w", err)
	}

	return &course, nil
}

// GetCourses retrieves published courses matching the filter options.
func (r *CourseRepository) GetCourses(ctx context.Context, filterOptions *contract.CourseFilterOptions) ([]entity.Course, error) {
	filter, sort := buildCourseFilterAndSort(filterOptions)

	findOpts := options.Find().SetSort(sort)
	if filterOptions.Limit > 0 {
		findOpts.SetLimit(filterOptions.Limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve courses: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []entity.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}

	return courses, nil
}

// UpdateCourse updates a course with the provided fields.
func (r *CourseRepository) UpdateCourse(ctx context.Context, courseID string, updates map[string]interface{}) error {
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	update := bson.M{"$set": updates}
	filter := bson.M{"_id": courseID}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	if res.MatchedCount == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// DeleteCourse removes a course record permanently.
func (r *CourseRepository) DeleteCourse(ctx context.Context, courseID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": courseID})
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// DistinctCategories returns the distinct category values among
// published courses.
func (r *CourseRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "category")
}

// DistinctInstructors returns the distinct instructor names among
// published courses.
func (r *CourseRepository) DistinctInstructors(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "instructor")
}

func (r *CourseRepository) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{"is_published": true})
	if err != nil {
		return nil, fmt.Errorf("failed to get distinct %s values: %w", field, err)
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			result = append(result, s)
		}
	}
	return result, nil
}

// IncrementStudentsEnrolled moves the enrollment counter by delta. A
// negative delta never takes the counter below zero: the guard filter
// simply refuses the move, which surfaces as ErrNotFound.
func (r *CourseRepository) IncrementStudentsEnrolled(ctx context.Context, courseID string, delta int) error {
	filter := bson.M{"_id": courseID}
	if delta < 0 {
		filter["students_enrolled"] = bson.M{"$gt": 0}
	}
	update := bson.M{"$inc": bson.M{"students_enrolled": delta}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to move enrollment counter: %w", err)
	}
	if res.ModifiedCount == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
