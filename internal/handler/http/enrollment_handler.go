package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub-io/coursehub/internal/handler/http/dto"
	"github.com/coursehub-io/coursehub/internal/usecase"
)

type EnrollmentHandler struct {
	enrollmentUsecase usecase.IEnrollmentUseCase
}

func NewEnrollmentHandler(enrollmentUsecase usecase.IEnrollmentUseCase) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentUsecase: enrollmentUsecase,
	}
}

// GetEnrollmentsHandler lists the course ids the current user is
// enrolled in.
func (h *EnrollmentHandler) GetEnrollmentsHandler(c *gin.Context) {
	ids, err := h.enrollmentUsecase.GetEnrolledCourseIDs(c.Request.Context())
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.EnrolledCoursesResponse{CourseIDs: ids})
}

// GetEnrollmentStatusHandler reports whether the current user is
// enrolled in the course.
func (h *EnrollmentHandler) GetEnrollmentStatusHandler(c *gin.Context) {
	courseID := c.Param("courseID")
	enrolled, err := h.enrollmentUsecase.IsEnrolledInCourse(c.Request.Context(), courseID)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.EnrollmentStatusResponse{CourseID: courseID, Enrolled: enrolled})
}

// EnrollHandler enrolls the current student in the course.
func (h *EnrollmentHandler) EnrollHandler(c *gin.Context) {
	courseID := c.Param("courseID")
	if err := h.enrollmentUsecase.Enroll(c.Request.Context(), courseID); err != nil {
		DomainErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusCreated, "Enrolled successfully")
}

// UnenrollHandler removes the current student's enrollment.
func (h *EnrollmentHandler) UnenrollHandler(c *gin.Context) {
	courseID := c.Param("courseID")
	if err := h.enrollmentUsecase.Unenroll(c.Request.Context(), courseID); err != nil {
		DomainErrorHandler(c, err)
		return
	}
	MessageHandler(c, http.StatusOK, "Unenrolled successfully")
}
