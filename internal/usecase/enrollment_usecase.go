package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/infrastructure/metrics"
	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

// IEnrollmentUseCase defines enrollment-related business logic.
type IEnrollmentUseCase interface {
	GetEnrolledCourseIDs(ctx context.Context) ([]string, error)
	IsEnrolledInCourse(ctx context.Context, courseID string) (bool, error)
	Enroll(ctx context.Context, courseID string) error
	Unenroll(ctx context.Context, courseID string) error
}

// EnrollmentUsecase implements IEnrollmentUseCase. Enrollment is a
// student-only action keyed by the (user, course) pair; the ledger
// enforces uniqueness of that pair.
type EnrollmentUsecase struct {
	enrollmentRepo contract.IEnrollmentRepository
	courseRepo     contract.ICourseRepository
	sessions       usecasecontract.ISession
	uuidgen        contract.IUUIDGenerator
	logger         usecasecontract.IAppLogger
	catalogCache   contract.ICatalogCache
}

// NewEnrollmentUsecase creates a new instance of EnrollmentUsecase.
func NewEnrollmentUsecase(enrollmentRepo contract.IEnrollmentRepository, courseRepo contract.ICourseRepository, sessions usecasecontract.ISession, uuidgenerator contract.IUUIDGenerator, logger usecasecontract.IAppLogger) *EnrollmentUsecase {
	return &EnrollmentUsecase{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		sessions:       sessions,
		uuidgen:        uuidgenerator,
		logger:         logger,
	}
}

// check if EnrollmentUsecase implements the IEnrollmentUseCase
var _ IEnrollmentUseCase = (*EnrollmentUsecase)(nil)

// SetCatalogCache injects the optional redis-backed cache so counter
// moves invalidate the cached catalog views.
func (uc *EnrollmentUsecase) SetCatalogCache(cache contract.ICatalogCache) {
	uc.catalogCache = cache
}

// GetEnrolledCourseIDs returns the course ids the current user is
// enrolled in. With no session it returns an empty list, not an error:
// a logged-out visitor simply has no enrollments.
func (uc *EnrollmentUsecase) GetEnrolledCourseIDs(ctx context.Context) ([]string, error) {
	user := uc.sessions.Current(ctx)
	if user == nil {
		return []string{}, nil
	}

	ids, err := uc.enrollmentRepo.ListCourseIDsByUser(ctx, user.ID)
	if err != nil {
		uc.logger.Errorf("failed to list enrollments for user %s, serving empty: %v", user.ID, err)
		return []string{}, nil
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// IsEnrolledInCourse reports whether the current user holds an
// enrollment for the course. False for anonymous visitors.
func (uc *EnrollmentUsecase) IsEnrolledInCourse(ctx context.Context, courseID string) (bool, error) {
	user := uc.sessions.Current(ctx)
	if user == nil {
		return false, nil
	}

	enrollment, err := uc.enrollmentRepo.GetEnrollment(ctx, user.ID, courseID)
	if err != nil {
		uc.logger.Errorf("failed to check enrollment user=%s course=%s: %v", user.ID, courseID, err)
		return false, nil
	}
	return enrollment != nil, nil
}

// Enroll records the current student into the course and bumps the
// course's enrollment counter. The counter move is best-effort: a
// failed increment after a successful insert is logged, never rolled
// back, so the counter is a close approximation rather than a ledger
// count.
func (uc *EnrollmentUsecase) Enroll(ctx context.Context, courseID string) error {
	user := uc.sessions.Current(ctx)
	if user == nil || !user.IsStudent() {
		return apperr.ErrUnauthorized
	}

	enrollment := &entity.Enrollment{
		ID:         uc.uuidgen.NewUUID(),
		UserID:     user.ID,
		CourseID:   courseID,
		Progress:   0,
		EnrolledAt: time.Now(),
	}
	if err := uc.enrollmentRepo.CreateEnrollment(ctx, enrollment); err != nil {
		if errors.Is(err, apperr.ErrAlreadyEnrolled) {
			return apperr.ErrAlreadyEnrolled
		}
		uc.logger.Errorf("failed to enroll user %s in course %s: %v", user.ID, courseID, err)
		return fmt.Errorf("%w: %v", apperr.ErrEnrollmentFailed, err)
	}

	if err := uc.courseRepo.IncrementStudentsEnrolled(ctx, courseID, 1); err != nil {
		uc.logger.Warningf("enrollment recorded but counter increment failed for course %s: %v", courseID, err)
	}

	go metrics.IncEnrollments()
	uc.invalidateCourseViews(ctx, courseID)
	return nil
}

// Unenroll removes the current student's enrollment. Removing an
// enrollment that does not exist is a no-op; the counter only moves
// when a row was actually deleted.
func (uc *EnrollmentUsecase) Unenroll(ctx context.Context, courseID string) error {
	user := uc.sessions.Current(ctx)
	if user == nil || !user.IsStudent() {
		return apperr.ErrUnauthorized
	}

	deleted, err := uc.enrollmentRepo.DeleteEnrollment(ctx, user.ID, courseID)
	if err != nil {
		uc.logger.Errorf("failed to unenroll user %s from course %s: %v", user.ID, courseID, err)
		return fmt.Errorf("%w: %v", apperr.ErrUnenrollmentFailed, err)
	}
	if !deleted {
		return nil
	}

	if err := uc.courseRepo.IncrementStudentsEnrolled(ctx, courseID, -1); err != nil {
		uc.logger.Warningf("unenrollment recorded but counter decrement failed for course %s: %v", courseID, err)
	}

	go metrics.IncUnenrollments()
	uc.invalidateCourseViews(ctx, courseID)
	return nil
}

func (uc *EnrollmentUsecase) invalidateCourseViews(ctx context.Context, courseID string) {
	if uc.catalogCache == nil {
		return
	}
	_ = uc.catalogCache.InvalidateCourseByID(ctx, courseID)
	_ = uc.catalogCache.InvalidateCourseLists(ctx)
	_ = uc.catalogCache.InvalidateStats(ctx)
}
