package mocks

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/usecase"
)

// MockEnrollmentUsecase is a mock implementation of the IEnrollmentUseCase interface
type MockEnrollmentUsecase struct {
	// Control mock behavior
	ShouldFailEnroll   bool
	ShouldFailUnenroll bool
	AlreadyEnrolled    bool
	Unauthorized       bool

	// Return values
	MockCourseIDs []string
}

// Ensure MockEnrollmentUsecase implements the correct interface for handler.NewEnrollmentHandler
var _ usecase.IEnrollmentUseCase = (*MockEnrollmentUsecase)(nil)

func NewMockEnrollmentUsecase() *MockEnrollmentUsecase {
	return &MockEnrollmentUsecase{
		MockCourseIDs: []string{"mock-course-id"},
	}
}

func (m *MockEnrollmentUsecase) GetEnrolledCourseIDs(ctx context.Context) ([]string, error) {
	return m.MockCourseIDs, nil
}

func (m *MockEnrollmentUsecase) IsEnrolledInCourse(ctx context.Context, courseID string) (bool, error) {
	for _, id := range m.MockCourseIDs {
		if id == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockEnrollmentUsecase) Enroll(ctx context.Context, courseID string) error {
	if m.Unauthorized {
		return apperr.ErrUnauthorized
	}
	if m.AlreadyEnrolled {
		return apperr.ErrAlreadyEnrolled
	}
	if m.ShouldFailEnroll {
		return apperr.ErrEnrollmentFailed
	}
	return nil
}

func (m *MockEnrollmentUsecase) Unenroll(ctx context.Context, courseID string) error {
	if m.Unauthorized {
		return apperr.ErrUnauthorized
	}
	if m.ShouldFailUnenroll {
		return apperr.ErrUnenrollmentFailed
	}
	return nil
}
