package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursehub-io/coursehub/internal/domain/entity"
	"github.com/coursehub-io/coursehub/internal/filter"
	"github.com/coursehub-io/coursehub/internal/handler/http/dto"
	"github.com/coursehub-io/coursehub/internal/usecase"
)

type CourseHandler struct {
	catalogUsecase usecase.ICatalogUseCase
}

func NewCourseHandler(catalogUsecase usecase.ICatalogUseCase) *CourseHandler {
	return &CourseHandler{
		catalogUsecase: catalogUsecase,
	}
}

// criteriaFromQuery builds filter criteria from the request query
// string. Unparseable numeric bounds are ignored rather than rejected.
func criteriaFromQuery(c *gin.Context) filter.Criteria {
	criteria := filter.Criteria{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Level:      c.Query("level"),
		Instructor: c.Query("instructor"),
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			criteria.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			criteria.MaxPrice = &v
		}
	}
	return criteria
}

// GetCoursesHandler lists published courses, optionally narrowed by
// search and filter query parameters.
func (h *CourseHandler) GetCoursesHandler(c *gin.Context) {
	criteria := criteriaFromQuery(c)
	courses, err := h.catalogUsecase.GetAllCourses(c.Request.Context(), criteria)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCourseListResponse(courses))
}

// GetCourseDetailHandler retrieves a single course by id.
func (h *CourseHandler) GetCourseDetailHandler(c *gin.Context) {
	courseID := c.Param("courseID")
	course, err := h.catalogUsecase.GetCourseByID(c.Request.Context(), courseID)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	if course == nil {
		ErrorHandler(c, http.StatusNotFound, "Course not found")
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCourseResponse(course))
}

// CreateCourseHandler creates a new course. Admin only.
func (h *CourseHandler) CreateCourseHandler(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	course, err := h.catalogUsecase.CreateCourse(c.Request.Context(), createCourseRequestToInput(req))
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, dto.ToCourseResponse(course))
}

// UpdateCourseHandler applies a partial update to a course. Admin only.
func (h *CourseHandler) UpdateCourseHandler(c *gin.Context) {
	courseID := c.Param("courseID")

	var req dto.UpdateCourseRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	updates := updateCourseRequestToMap(req)
	course, err := h.catalogUsecase.UpdateCourse(c.Request.Context(), courseID, updates)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ToCourseResponse(course))
}

// DeleteCourseHandler removes a course permanently. Admin only.
func (h *CourseHandler) DeleteCourseHandler(c *gin.Context) {
	courseID := c.Param("courseID")

	if err := h.catalogUsecase.DeleteCourse(c.Request.Context(), courseID); err != nil {
		DomainErrorHandler(c, err)
		return
	}

	MessageHandler(c, http.StatusOK, "Course deleted successfully")
}

// GetCategoriesHandler lists the distinct course categories.
func (h *CourseHandler) GetCategoriesHandler(c *gin.Context) {
	categories, err := h.catalogUsecase.GetCategories(c.Request.Context())
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"categories": categories})
}

// GetInstructorsHandler lists the distinct instructor names.
func (h *CourseHandler) GetInstructorsHandler(c *gin.Context) {
	instructors, err := h.catalogUsecase.GetInstructors(c.Request.Context())
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, gin.H{"instructors": instructors})
}

// GetFeaturedCoursesHandler lists the highest-rated courses.
func (h *CourseHandler) GetFeaturedCoursesHandler(c *gin.Context) {
	limit := limitFromQuery(c, 6)
	courses, err := h.catalogUsecase.GetFeaturedCourses(c.Request.Context(), limit)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCourseListResponse(courses))
}

// GetPopularCoursesHandler lists the most-enrolled courses.
func (h *CourseHandler) GetPopularCoursesHandler(c *gin.Context) {
	limit := limitFromQuery(c, 6)
	courses, err := h.catalogUsecase.GetPopularCourses(c.Request.Context(), limit)
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCourseListResponse(courses))
}

// GetCourseStatsHandler returns aggregate catalog statistics.
func (h *CourseHandler) GetCourseStatsHandler(c *gin.Context) {
	stats, err := h.catalogUsecase.GetCourseStats(c.Request.Context())
	if err != nil {
		DomainErrorHandler(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.ToCourseStatsResponse(stats))
}

func limitFromQuery(c *gin.Context, fallback int) int {
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func createCourseRequestToInput(req dto.CreateCourseRequest) usecase.CourseInput {
	return usecase.CourseInput{
		Title:         req.Title,
		Description:   req.Description,
		Instructor:    req.Instructor,
		Duration:      req.Duration,
		Category:      req.Category,
		Level:         entity.CourseLevel(req.Level),
		Price:         req.Price,
		Image:         req.Image,
		Syllabus:      req.Syllabus,
		Prerequisites: req.Prerequisites,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
	}
}

func updateCourseRequestToMap(req dto.UpdateCourseRequest) map[string]interface{} {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Instructor != nil {
		updates["instructor"] = *req.Instructor
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.Syllabus != nil {
		updates["syllabus"] = req.Syllabus
	}
	if req.Prerequisites != nil {
		updates["prerequisites"] = req.Prerequisites
	}
	if req.Tags != nil {
		updates["tags"] = req.Tags
	}
	if req.IsPublished != nil {
		updates["is_published"] = *req.IsPublished
	}

	return updates
}
