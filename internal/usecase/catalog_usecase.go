package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/filter"
	"github.com/coursehub-io/coursehub/internal/infrastructure/metrics"
	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

// ICatalogUseCase defines catalog-related business logic.
type ICatalogUseCase interface {
	GetAllCourses(ctx context.Context, criteria filter.Criteria) ([]entity.Course, error)
	GetCourseByID(ctx context.Context, id string) (*entity.Course, error)
	CreateCourse(ctx context.Context, input CourseInput) (*entity.Course, error)
	UpdateCourse(ctx context.Context, id string, updates map[string]interface{}) (*entity.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	GetCategories(ctx context.Context) ([]string, error)
	GetInstructors(ctx context.Context) ([]string, error)
	GetFeaturedCourses(ctx context.Context, limit int) ([]entity.Course, error)
	GetPopularCourses(ctx context.Context, limit int) ([]entity.Course, error)
	GetCourseStats(ctx context.Context) (entity.CourseStats, error)
}

// CourseInput carries the admin-supplied fields for a new course.
type CourseInput struct {
	Title         string
	Description   string
	Instructor    string
	Duration      string
	Category      string
	Level         entity.CourseLevel
	Price         float64
	Image         string
	Syllabus      []string
	Prerequisites []string
	Tags          []string
	IsPublished   *bool
}

// CatalogUsecase implements ICatalogUseCase. Reads degrade to empty
// results on gateway failure; writes are admin-gated and propagate
// typed errors.
type CatalogUsecase struct {
	courseRepo   contract.ICourseRepository
	sessions     usecasecontract.ISession
	uuidgen      contract.IUUIDGenerator
	logger       usecasecontract.IAppLogger
	catalogCache contract.ICatalogCache
	// simple metrics
	listHits   uint64
	listMiss   uint64
	detailHits uint64
	detailMiss uint64
}

// NewCatalogUsecase creates a new instance of CatalogUsecase.
func NewCatalogUsecase(courseRepo contract.ICourseRepository, sessions usecasecontract.ISession, uuidgenerator contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *CatalogUsecase {
	return &CatalogUsecase{
		courseRepo: courseRepo,
		sessions:   sessions,
		uuidgen:    uuidgenerator,
		logger:     logger,
	}
}

// check if CatalogUsecase implements the ICatalogUseCase
var _ ICatalogUseCase = (*CatalogUsecase)(nil)

// SetCatalogCache injects the optional redis-backed cache.
func (uc *CatalogUsecase) SetCatalogCache(cache contract.ICatalogCache) {
	uc.catalogCache = cache
}

// GetAllCourses returns published courses, newest first, narrowed by
// the criteria. The repository may push some predicates down to the
// store, but filter.Apply always re-applies the full semantics so the
// result is correct even against an unfiltered fetch. A gateway error
// degrades to an empty result; the catalog view never hard-fails on a
// transient read error.
func (uc *CatalogUsecase) GetAllCourses(ctx context.Context, criteria filter.Criteria) ([]entity.Course, error) {
	key := criteria.CacheKey()
	if uc.catalogCache != nil {
		t0 := time.Now()
		cached, found, err := uc.catalogCache.GetCourseList(ctx, key)
		elapsed := time.Since(t0)
		if err == nil && found && cached != nil {
			atomic.AddUint64(&uc.listHits, 1)
			go metrics.IncListHit()
			uc.logger.Infof("cache hit: course list key=%s took=%s", key, elapsed)
			return cached.Courses, nil
		} else if err == nil && !found {
			atomic.AddUint64(&uc.listMiss, 1)
			go metrics.IncListMiss()
		} else if err != nil {
			uc.logger.Warningf("cache error: course list key=%s err=%v", key, err)
		}
	}

	opts := &contract.CourseFilterOptions{
		Category:  criteria.Category,
		Level:     criteria.Level,
		MinPrice:  criteria.MinPrice,
		MaxPrice:  criteria.MaxPrice,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
	courses, err := uc.courseRepo.GetCourses(ctx, opts)
	if err != nil {
		uc.logger.Errorf("failed to get courses, serving empty catalog: %v", err)
		return []entity.Course{}, nil
	}

	courses = filter.Apply(courses, criteria)
	if courses == nil {
		courses = []entity.Course{}
	}

	if uc.catalogCache != nil {
		_ = uc.catalogCache.SetCourseList(ctx, key, &contract.CachedCourseList{Courses: courses})
	}
	return courses, nil
}

// GetCourseByID fetches one course. Absence is reported as (nil, nil),
// not an error.
func (uc *CatalogUsecase) GetCourseByID(ctx context.Context, id string) (*entity.Course, error) {
	if uc.catalogCache != nil {
		cached, found, err := uc.catalogCache.GetCourseByID(ctx, id)
		if err == nil && found && cached != nil {
			atomic.AddUint64(&uc.detailHits, 1)
			go metrics.IncDetailHit()
			return cached, nil
		} else if err == nil && !found {
			atomic.AddUint64(&uc.detailMiss, 1)
			go metrics.IncDetailMiss()
		}
	}

	course, err := uc.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil
		}
		uc.logger.Errorf("failed to get course %s: %v", id, err)
		return nil, nil
	}

	if uc.catalogCache != nil && course != nil {
		_ = uc.catalogCache.SetCourseByID(ctx, id, course)
	}
	return course, nil
}

// CreateCourse creates a new catalog entry. Admin-only. A course with
// no explicit publish flag defaults to published.
func (uc *CatalogUsecase) CreateCourse(ctx context.Context, input CourseInput) (*entity.Course, error) {
	if !uc.sessions.IsAdmin(ctx) {
		return nil, apperr.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.Instructor == "" {
		return nil, errors.New("instructor is required")
	}
	if input.Price < 0 {
		return nil, errors.New("price must be non-negative")
	}
	if !entity.ValidLevel(string(input.Level)) {
		return nil, fmt.Errorf("unknown level %q", input.Level)
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}

	now := time.Now()
	course := &entity.Course{
		ID:               uc.uuidgen.NewUUID(),
		Title:            input.Title,
		Description:      input.Description,
		Instructor:       input.Instructor,
		Duration:         input.Duration,
		Category:         input.Category,
		Level:            input.Level,
		Price:            input.Price,
		Rating:           0,
		StudentsEnrolled: 0,
		Image:            input.Image,
		Syllabus:         input.Syllabus,
		Prerequisites:    input.Prerequisites,
		Tags:             input.Tags,
		CreatedAt:        now,
		UpdatedAt:        now,
		IsPublished:      isPublished,
	}

	if err := uc.courseRepo.CreateCourse(ctx, course); err != nil {
		uc.logger.Errorf("failed to create course: %v", err)
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	uc.invalidateCatalog(ctx, course.ID)
	return course, nil
}

// UpdateCourse performs a partial merge of the provided fields.
// Admin-only. The identifier, the enrollment counter, and created_at
// are immutable here; updated_at is refreshed.
func (uc *CatalogUsecase) UpdateCourse(ctx context.Context, id string, updates map[string]interface{}) (*entity.Course, error) {
	if !uc.sessions.IsAdmin(ctx) {
		return nil, apperr.ErrUnauthorized
	}

	delete(updates, "_id")
	delete(updates, "id")
	delete(updates, "students_enrolled")
	delete(updates, "created_at")

	if price, ok := updates["price"].(float64); ok && price < 0 {
		return nil, errors.New("price must be non-negative")
	}
	if level, ok := updates["level"].(string); ok && !entity.ValidLevel(level) {
		return nil, fmt.Errorf("unknown level %q", level)
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := uc.courseRepo.UpdateCourse(ctx, id, updates); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.ErrNotFound
			}
			uc.logger.Errorf("failed to update course %s: %v", id, err)
			return nil, fmt.Errorf("failed to update course: %w", err)
		}
	}

	updated, err := uc.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		uc.logger.Errorf("failed to get updated course %s: %v", id, err)
		return nil, fmt.Errorf("failed to get updated course: %w", err)
	}

	uc.invalidateCatalog(ctx, id)
	return updated, nil
}

// DeleteCourse removes a course unconditionally. Admin-only, hard
// delete, irreversible.
func (uc *CatalogUsecase) DeleteCourse(ctx context.Context, id string) error {
	if !uc.sessions.IsAdmin(ctx) {
		return apperr.ErrUnauthorized
	}

	if err := uc.courseRepo.DeleteCourse(ctx, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		uc.logger.Errorf("failed to delete course %s: %v", id, err)
		return fmt.Errorf("failed to delete course: %w", err)
	}

	uc.invalidateCatalog(ctx, id)
	return nil
}

// GetCategories returns the distinct categories among published
// courses, sorted.
func (uc *CatalogUsecase) GetCategories(ctx context.Context) ([]string, error) {
	categories, err := uc.courseRepo.DistinctCategories(ctx)
	if err != nil {
		uc.logger.Errorf("failed to get categories, serving empty: %v", err)
		return []string{}, nil
	}
	sort.Strings(categories)
	return categories, nil
}

// GetInstructors returns the distinct instructor names among published
// courses, sorted lexicographically.
func (uc *CatalogUsecase) GetInstructors(ctx context.Context) ([]string, error) {
	instructors, err := uc.courseRepo.DistinctInstructors(ctx)
	if err != nil {
		uc.logger.Errorf("failed to get instructors, serving empty: %v", err)
		return []string{}, nil
	}
	sort.Strings(instructors)
	return instructors, nil
}

// GetFeaturedCourses returns published courses by rating descending,
// capped at limit.
func (uc *CatalogUsecase) GetFeaturedCourses(ctx context.Context, limit int) ([]entity.Course, error) {
	return uc.sortedCourses(ctx, "rating", limit)
}

// GetPopularCourses returns published courses by enrollment count
// descending, capped at limit.
func (uc *CatalogUsecase) GetPopularCourses(ctx context.Context, limit int) ([]entity.Course, error) {
	return uc.sortedCourses(ctx, "students_enrolled", limit)
}

func (uc *CatalogUsecase) sortedCourses(ctx context.Context, sortBy string, limit int) ([]entity.Course, error) {
	if limit < 1 {
		limit = 6
	}
	opts := &contract.CourseFilterOptions{
		SortBy:    sortBy,
		SortOrder: "desc",
		Limit:     int64(limit),
	}
	courses, err := uc.courseRepo.GetCourses(ctx, opts)
	if err != nil {
		uc.logger.Errorf("failed to get courses by %s, serving empty: %v", sortBy, err)
		return []entity.Course{}, nil
	}
	if len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}

// GetCourseStats aggregates the catalog. The course list and the
// category listing are independent fetches with no ordering between
// them, so they run concurrently and join before deriving the stats.
// Any partial failure degrades to all-zero stats.
func (uc *CatalogUsecase) GetCourseStats(ctx context.Context) (entity.CourseStats, error) {
	if uc.catalogCache != nil {
		cached, found, err := uc.catalogCache.GetStats(ctx)
		if err == nil && found && cached != nil {
			return *cached, nil
		}
	}

	var (
		wg          sync.WaitGroup
		courses     []entity.Course
		categories  []string
		coursesErr  error
		categoryErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		courses, coursesErr = uc.courseRepo.GetCourses(ctx, &contract.CourseFilterOptions{})
	}()
	go func() {
		defer wg.Done()
		categories, categoryErr = uc.courseRepo.DistinctCategories(ctx)
	}()
	wg.Wait()

	if coursesErr != nil || categoryErr != nil {
		uc.logger.Errorf("failed to compute course stats, serving zeros: courses=%v categories=%v", coursesErr, categoryErr)
		return entity.CourseStats{}, nil
	}

	stats := entity.CourseStats{
		TotalCourses:    len(courses),
		CategoriesCount: len(categories),
	}
	if len(courses) > 0 {
		var ratingSum float64
		for _, c := range courses {
			stats.TotalStudents += c.StudentsEnrolled
			ratingSum += c.Rating
		}
		stats.AverageRating = math.Round(ratingSum/float64(len(courses))*10) / 10
	}

	if uc.catalogCache != nil {
		_ = uc.catalogCache.SetStats(ctx, &stats)
	}
	return stats, nil
}

// invalidateCatalog drops every cached view touched by a course
// mutation.
func (uc *CatalogUsecase) invalidateCatalog(ctx context.Context, courseID string) {
	if uc.catalogCache == nil {
		return
	}
	_ = uc.catalogCache.InvalidateCourseLists(ctx)
	_ = uc.catalogCache.InvalidateCourseByID(ctx, courseID)
	_ = uc.catalogCache.InvalidateStats(ctx)
}
