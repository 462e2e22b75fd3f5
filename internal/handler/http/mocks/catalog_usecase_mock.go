package mocks

import (
	"context"
	"errors"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/filter"
	"github.com/coursehub-io/coursehub/internal/usecase"
)

// MockCatalogUsecase is a mock implementation of the ICatalogUseCase interface
type MockCatalogUsecase struct {
	// Control mock behavior
	ShouldFailCreate     bool
	ShouldFailUpdate     bool
	ShouldFailDelete     bool
	ShouldReturnNotFound bool
	Unauthorized         bool

	// Return values
	MockCourses []entity.Course
	MockStats   entity.CourseStats

	// Captured arguments
	LastCriteria filter.Criteria
}

// Ensure MockCatalogUsecase implements the correct interface for handler.NewCourseHandler
var _ usecase.ICatalogUseCase = (*MockCatalogUsecase)(nil)

func NewMockCatalogUsecase() *MockCatalogUsecase {
	return &MockCatalogUsecase{
		MockCourses: []entity.Course{
			{
				ID:         "mock-course-id",
				Title:      "Test Course",
				Instructor: "Test Instructor",
				Category:   "Testing",
				Level:      entity.CourseLevelBeginner,
				Price:      49.99,
			},
		},
		MockStats: entity.CourseStats{
			TotalCourses:    1,
			TotalStudents:   10,
			AverageRating:   4.5,
			CategoriesCount: 1,
		},
	}
}

func (m *MockCatalogUsecase) GetAllCourses(ctx context.Context, criteria filter.Criteria) ([]entity.Course, error) {
	m.LastCriteria = criteria
	return m.MockCourses, nil
}

func (m *MockCatalogUsecase) GetCourseByID(ctx context.Context, id string) (*entity.Course, error) {
	if m.ShouldReturnNotFound {
		return nil, nil
	}
	course := m.MockCourses[0]
	return &course, nil
}

func (m *MockCatalogUsecase) CreateCourse(ctx context.Context, input usecase.CourseInput) (*entity.Course, error) {
	if m.Unauthorized {
		return nil, apperr.ErrUnauthorized
	}
	if m.ShouldFailCreate {
		return nil, errors.New("course creation failed")
	}
	course := m.MockCourses[0]
	course.Title = input.Title
	return &course, nil
}

func (m *MockCatalogUsecase) UpdateCourse(ctx context.Context, id string, updates map[string]interface{}) (*entity.Course, error) {
	if m.Unauthorized {
		return nil, apperr.ErrUnauthorized
	}
	if m.ShouldReturnNotFound {
		return nil, apperr.ErrNotFound
	}
	if m.ShouldFailUpdate {
		return nil, errors.New("course update failed")
	}
	course := m.MockCourses[0]
	return &course, nil
}

func (m *MockCatalogUsecase) DeleteCourse(ctx context.Context, id string) error {
	if m.Unauthorized {
		return apperr.ErrUnauthorized
	}
	if m.ShouldReturnNotFound {
		return apperr.ErrNotFound
	}
	if m.ShouldFailDelete {
		return errors.New("course deletion failed")
	}
	return nil
}

func (m *MockCatalogUsecase) GetCategories(ctx context.Context) ([]string, error) {
	return []string{"Testing"}, nil
}

func (m *MockCatalogUsecase) GetInstructors(ctx context.Context) ([]string, error) {
	return []string{"Test Instructor"}, nil
}

func (m *MockCatalogUsecase) GetFeaturedCourses(ctx context.Context, limit int) ([]entity.Course, error) {
	return m.MockCourses, nil
}

func (m *MockCatalogUsecase) GetPopularCourses(ctx context.Context, limit int) ([]entity.Course, error) {
	return m.MockCourses, nil
}

func (m *MockCatalogUsecase) GetCourseStats(ctx context.Context) (entity.CourseStats, error) {
	return m.MockStats, nil
}
