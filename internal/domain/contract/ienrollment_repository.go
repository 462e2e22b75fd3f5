package contract

import (
	"context"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// IEnrollmentRepository defines the interface for enrollment persistence.
type IEnrollmentRepository interface {
	// CreateEnrollment inserts the (user, course) relation. A duplicate
	// pair fails with apperr.ErrAlreadyEnrolled.
	CreateEnrollment(ctx context.Context, enrollment *entity.Enrollment) error
	// DeleteEnrollment removes the relation and reports whether a row
	// actually existed.
	DeleteEnrollment(ctx context.Context, userID, courseID string) (bool, error)
	GetEnrollment(ctx context.Context, userID, courseID string) (*entity.Enrollment, error)
	ListCourseIDsByUser(ctx context.Context, userID string) ([]string, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
}
