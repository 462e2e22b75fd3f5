package dto

import (
	"time"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
)

// Request DTOs for Course Handlers

// CreateCourseRequest defines the structure for creating a new course
type CreateCourseRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Instructor    string   `json:"instructor" binding:"required"`
	Duration      string   `json:"duration"`
	Category      string   `json:"category" binding:"required"`
	Level         string   `json:"level" binding:"required,oneof=Beginner Intermediate Advanced"`
	Price         float64  `json:"price" binding:"gte=0"`
	Image         string   `json:"image"`
	Syllabus      []string `json:"syllabus"`
	Prerequisites []string `json:"prerequisites"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"is_published"`
}

// UpdateCourseRequest defines the structure for updating an existing course
type UpdateCourseRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Instructor    *string  `json:"instructor"`
	Duration      *string  `json:"duration"`
	Category      *string  `json:"category"`
	Level         *string  `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	Rating        *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Image         *string  `json:"image"`
	Syllabus      []string `json:"syllabus"`
	Prerequisites []string `json:"prerequisites"`
	Tags          []string `json:"tags"`
	IsPublished   *bool    `json:"is_published"`
}

// Response DTOs

// CourseResponse defines the standard JSON response for a single course
type CourseResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Instructor       string    `json:"instructor"`
	Duration         string    `json:"duration"`
	Category         string    `json:"category"`
	Level            string    `json:"level"`
	Price            float64   `json:"price"`
	Rating           float64   `json:"rating"`
	StudentsEnrolled int       `json:"students_enrolled"`
	Image            string    `json:"image,omitempty"`
	Syllabus         []string  `json:"syllabus"`
	Prerequisites    []string  `json:"prerequisites"`
	Tags             []string  `json:"tags"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CourseListResponse defines the structure for a list of courses.
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	TotalCount int              `json:"total_count"`
}

// CourseStatsResponse defines the aggregate catalog statistics.
type CourseStatsResponse struct {
	TotalCourses    int     `json:"total_courses"`
	TotalStudents   int     `json:"total_students"`
	AverageRating   float64 `json:"average_rating"`
	CategoriesCount int     `json:"categories_count"`
}

// EnrollmentStatusResponse reports whether the current user is
// enrolled in a course.
type EnrollmentStatusResponse struct {
	CourseID string `json:"course_id"`
	Enrolled bool   `json:"enrolled"`
}

// EnrolledCoursesResponse lists the course ids of the current user's
// enrollments.
type EnrolledCoursesResponse struct {
	CourseIDs []string `json:"course_ids"`
}

// DTO Mapper
// a mapper function to convert *entity.Course to a CourseResponse

func ToCourseResponse(course *entity.Course) CourseResponse {
	return CourseResponse{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		Instructor:       course.Instructor,
		Duration:         course.Duration,
		Category:         course.Category,
		Level:            string(course.Level),
		Price:            course.Price,
		Rating:           course.Rating,
		StudentsEnrolled: course.StudentsEnrolled,
		Image:            course.Image,
		Syllabus:         course.Syllabus,
		Prerequisites:    course.Prerequisites,
		Tags:             course.Tags,
		CreatedAt:        course.CreatedAt,
		UpdatedAt:        course.UpdatedAt,
	}
}

// ToCourseListResponse maps a slice of courses to the list response.
func ToCourseListResponse(courses []entity.Course) CourseListResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, ToCourseResponse(&courses[i]))
	}
	return CourseListResponse{Courses: out, TotalCount: len(out)}
}

// ToCourseStatsResponse maps the stats entity to its response DTO.
func ToCourseStatsResponse(stats entity.CourseStats) CourseStatsResponse {
	return CourseStatsResponse{
		TotalCourses:    stats.TotalCourses,
		TotalStudents:   stats.TotalStudents,
		AverageRating:   stats.AverageRating,
		CategoriesCount: stats.CategoriesCount,
	}
}
