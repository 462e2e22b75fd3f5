package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursehub-io/coursehub/internal/domain/apperr"
	"github.com/coursehub-io/coursehub/internal/domain/contract"
	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/session"
)

// fakeEnrollmentRepo is an in-memory IEnrollmentRepository keyed by
// (user, course), enforcing uniqueness like the real unique index.
type fakeEnrollmentRepo struct {
	enrollments map[string]entity.Enrollment

	ShouldFailCreate bool
	ShouldFailDelete bool
	ShouldFailList   bool
}

var _ contract.IEnrollmentRepository = (*fakeEnrollmentRepo)(nil)

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{enrollments: make(map[string]entity.Enrollment)}
}

func pairKey(userID, courseID string) string { return userID + "/" + courseID }

func (r *fakeEnrollmentRepo) CreateEnrollment(ctx context.Context, enrollment *entity.Enrollment) error {
	if r.ShouldFailCreate {
		return errors.New("insert failed")
	}
	key := pairKey(enrollment.UserID, enrollment.CourseID)
	if _, exists := r.enrollments[key]; exists {
		return apperr.ErrAlreadyEnrolled
	}
	r.enrollments[key] = *enrollment
	return nil
}

func (r *fakeEnrollmentRepo) DeleteEnrollment(ctx context.Context, userID, courseID string) (bool, error) {
	if r.ShouldFailDelete {
		return false, errors.New("delete failed")
	}
	key := pairKey(userID, courseID)
	if _, exists := r.enrollments[key]; !exists {
		return false, nil
	}
	delete(r.enrollments, key)
	return true, nil
}

func (r *fakeEnrollmentRepo) GetEnrollment(ctx context.Context, userID, courseID string) (*entity.Enrollment, error) {
	if e, exists := r.enrollments[pairKey(userID, courseID)]; exists {
		return &e, nil
	}
	return nil, nil
}

func (r *fakeEnrollmentRepo) ListCourseIDsByUser(ctx context.Context, userID string) ([]string, error) {
	if r.ShouldFailList {
		return nil, errors.New("gateway down")
	}
	var ids []string
	for _, e := range r.enrollments {
		if e.UserID == userID {
			ids = append(ids, e.CourseID)
		}
	}
	return ids, nil
}

func (r *fakeEnrollmentRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var n int64
	for _, e := range r.enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func TestGetEnrolledCourseIDsLoggedOut(t *testing.T) {
	uc := NewEnrollmentUsecase(newFakeEnrollmentRepo(), catalogFixture(), session.NewStore(), &fakeUUIDGen{}, testLogger{})

	ids, err := uc.GetEnrolledCourseIDs(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestGetEnrolledCourseIDsDegradesToEmpty(t *testing.T) {
	repo := newFakeEnrollmentRepo()
	repo.ShouldFailList = true
	uc := NewEnrollmentUsecase(repo, catalogFixture(), studentSession(), &fakeUUIDGen{}, testLogger{})

	ids, err := uc.GetEnrolledCourseIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEnrollRequiresStudent(t *testing.T) {
	repo := newFakeEnrollmentRepo()

	for name, sessions := range map[string]*session.Store{
		"anonymous": session.NewStore(),
		"admin":     adminSession(),
	} {
		t.Run(name, func(t *testing.T) {
			uc := NewEnrollmentUsecase(repo, catalogFixture(), sessions, &fakeUUIDGen{}, testLogger{})
			err := uc.Enroll(context.Background(), "c1")
			assert.ErrorIs(t, err, apperr.ErrUnauthorized)
			assert.Empty(t, repo.enrollments)
		})
	}
}

func TestEnrollRecordsAndBumpsCounter(t *testing.T) {
	enrollRepo := newFakeEnrollmentRepo()
	courseRepo := catalogFixture()
	uc := NewEnrollmentUsecase(enrollRepo, courseRepo, studentSession(), &fakeUUIDGen{next: "e1"}, testLogger{})

	require.NoError(t, uc.Enroll(context.Background(), "c1"))

	e := enrollRepo.enrollments[pairKey("student-1", "c1")]
	assert.Equal(t, "e1", e.ID)
	assert.Zero(t, e.Progress)
	assert.False(t, e.EnrolledAt.IsZero())
	assert.Equal(t, []int{1}, courseRepo.IncrementCalls)

	enrolled, err := uc.IsEnrolledInCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, enrolled)
}

func TestEnrollTwiceIsConflict(t *testing.T) {
	enrollRepo := newFakeEnrollmentRepo()
	courseRepo := catalogFixture()
	uc := NewEnrollmentUsecase(enrollRepo, courseRepo, studentSession(), &fakeUUIDGen{}, testLogger{})
	ctx := context.Background()

	require.NoError(t, uc.Enroll(ctx, "c1"))
	err := uc.Enroll(ctx, "c1")
	assert.ErrorIs(t, err, apperr.ErrAlreadyEnrolled)
	// The duplicate attempt must not move the counter again.
	assert.Equal(t, []int{1}, courseRepo.IncrementCalls)
}

func TestEnrollGatewayFailure(t *testing.T) {
	enrollRepo := newFakeEnrollmentRepo()
	enrollRepo.ShouldFailCreate = true
	courseRepo := catalogFixture()
	uc := NewEnrollmentUsecase(enrollRepo, courseRepo, studentSession(), &fakeUUIDGen{}, testLogger{})

	err := uc.Enroll(context.Background(), "c1")
	assert.ErrorIs(t, err, apperr.ErrEnrollmentFailed)
	assert.Empty(t, courseRepo.IncrementCalls)
}

func TestEnrollSucceedsWhenCounterMoveFails(t *testing.T) {
	enrollRepo := newFakeEnrollmentRepo()
	courseRepo := catalogFixture()
	courseRepo.ShouldFailIncrement = true
	uc := NewEnrollmentUsecase(enrollRepo, courseRepo, studentSession(), &fakeUUIDGen{}, testLogger{})

	// Counter pairing is best effort: the enrollment stands.
	require.NoError(t, uc.Enroll(context.Background(), "c1"))
	assert.Len(t, enrollRepo.enrollments, 1)
}

func TestUnenrollAbsentIsNoOp(t *testing.T) {
	enrollRepo := newFakeEnrollmentRepo()
	courseRepo := catalogFixture()
	uc := NewEnrollmentUsecase(enrollRepo, courseRepo, studentSession(), &fakeUUIDGen{}, testLogger{})

	require.NoError(t, uc.Unenroll(context.Background(), "c1"))
	assert.Empty(t, courseRepo.IncrementCalls)
}

func TestUnenrollRemovesAndDecrementsCounter(t *testing.T) {
	enrollRepo := newFakeEnrollmentRepo()
	courseRepo := catalogFixture()
	uc := NewEnrollmentUsecase(enrollRepo, courseRepo, studentSession(), &fakeUUIDGen{}, testLogger{})
	ctx := context.Background()

	require.NoError(t, uc.Enroll(ctx, "c1"))
	require.NoError(t, uc.Unenroll(ctx, "c1"))

	assert.Empty(t, enrollRepo.enrollments)
	assert.Equal(t, []int{1, -1}, courseRepo.IncrementCalls)

	enrolled, err := uc.IsEnrolledInCourse(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestUnenrollRequiresStudent(t *testing.T) {
	uc := NewEnrollmentUsecase(newFakeEnrollmentRepo(), catalogFixture(), adminSession(), &fakeUUIDGen{}, testLogger{})
	err := uc.Unenroll(context.Background(), "c1")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestIsEnrolledAnonymous(t *testing.T) {
	uc := NewEnrollmentUsecase(newFakeEnrollmentRepo(), catalogFixture(), session.NewStore(), &fakeUUIDGen{}, testLogger{})
	enrolled, err := uc.IsEnrolledInCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, enrolled)
}
