package contract

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// ICourseRepository provides methods for managing course data in the database.
type ICourseRepository interface {
	CreateCourse(ctx context.Context, course *entity.Course) error
	GetCourseByID(ctx context.Context, courseID string) (*entity.Course, error)
	// GetCourses retrieves published courses. Server-side narrowing through
	// filterOptions is an optimization only; callers re-apply the same
	// predicates in memory.
	GetCourses(ctx context.Context, filterOptions *CourseFilterOptions) ([]entity.Course, error)
	UpdateCourse(ctx context.Context, courseID string, updates map[string]interface{}) error
	DeleteCourse(ctx context.Context, courseID string) error
	DistinctCategories(ctx context.Context) ([]string, error)
	DistinctInstructors(ctx context.Context) ([]string, error)
	// IncrementStudentsEnrolled atomically adjusts the enrollment counter
	// by delta. The counter never goes below zero.
	IncrementStudentsEnrolled(ctx context.Context, courseID string, delta int) error
}

// CourseFilterOptions encapsulates the narrowing and ordering parameters
// the repository can push down to the store.
type CourseFilterOptions struct {
	Category  string
	Level     string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string // "created_at", "rating", "students_enrolled"
	SortOrder string // "asc", "desc"
	Limit     int64
}
