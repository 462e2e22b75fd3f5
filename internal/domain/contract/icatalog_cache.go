package contract

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// CachedCourseList is the cached payload for catalog list reads.
type CachedCourseList struct {
	Courses []entity.Course `json:"courses"`
}

// ICatalogCache defines caching operations for the course catalog.
type ICatalogCache interface {
	// Detail (by id)
	GetCourseByID(ctx context.Context, id string) (*entity.Course, bool, error)
	SetCourseByID(ctx context.Context, id string, course *entity.Course) error
	InvalidateCourseByID(ctx context.Context, id string) error

	// List pages (key built by usecase)
	GetCourseList(ctx context.Context, key string) (*CachedCourseList, bool, error)
	SetCourseList(ctx context.Context, key string, list *CachedCourseList) error
	InvalidateCourseLists(ctx context.Context) error

	// Aggregate stats
	GetStats(ctx context.Context) (*entity.CourseStats, bool, error)
	SetStats(ctx context.Context, stats *entity.CourseStats) error
	InvalidateStats(ctx context.Context) error
}
