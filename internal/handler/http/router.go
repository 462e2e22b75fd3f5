package http

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/coursehub-io/coursehub/internal/handler/http/middleware"
	"github.com/coursehub-io/coursehub/internal/usecase"
	usecasecontract "github.com/coursehub-io/coursehub/internal/usecase/contract"
)

type Router struct {
	userHandler       *UserHandler
	courseHandler     *CourseHandler
	enrollmentHandler *EnrollmentHandler
	authUsecase       usecasecontract.IAuthUseCase
	jwtService        usecase.JWTService
}

func NewRouter(authUsecase usecasecontract.IAuthUseCase, catalogUsecase usecase.ICatalogUseCase, enrollmentUsecase usecase.IEnrollmentUseCase, jwtService usecase.JWTService) *Router {
	return &Router{
		userHandler:       NewUserHandler(authUsecase),
		courseHandler:     NewCourseHandler(catalogUsecase),
		enrollmentHandler: NewEnrollmentHandler(enrollmentUsecase),
		authUsecase:       authUsecase,
		jwtService:        jwtService,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	// rate limiter configuration
	lmt := tollbooth.NewLimiter(10, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage("Too many requests, please try again later.")
	router.Use(middleware.RateLimiter(lmt))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// API v1 routes
	v1 := router.Group("/api/v1")

	// Public routes (no authentication required)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.userHandler.Register)
		auth.POST("/login", r.userHandler.Login)
		auth.POST("/refresh-token", r.userHandler.RefreshToken)
	}

	// Public user routes
	users := v1.Group("/users")
	{
		users.GET("/profile/:id", r.userHandler.GetUser)
	}

	// Public catalog routes. Auth is optional so anonymous visitors can
	// browse; a valid token only changes session-dependent responses.
	courses := v1.Group("/courses")
	courses.Use(middleware.OptionalAuthMiddleWare(r.jwtService, r.authUsecase))
	{
		courses.GET("", r.courseHandler.GetCoursesHandler)
		courses.GET("/categories", r.courseHandler.GetCategoriesHandler)
		courses.GET("/instructors", r.courseHandler.GetInstructorsHandler)
		courses.GET("/featured", r.courseHandler.GetFeaturedCoursesHandler)
		courses.GET("/popular", r.courseHandler.GetPopularCoursesHandler)
		courses.GET("/stats", r.courseHandler.GetCourseStatsHandler)
		courses.GET("/:courseID", r.courseHandler.GetCourseDetailHandler)
	}

	// Protected routes (authentication required)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleWare(r.jwtService, r.authUsecase))
	{
		// Current user routes
		protected.GET("/me", r.userHandler.GetCurrentUser)
		protected.PUT("/me", r.userHandler.UpdateUser)

		// Enrollment routes (students only)
		student := protected.Group("/")
		student.Use(middleware.RequireStudent())
		{
			student.GET("/enrollments", r.enrollmentHandler.GetEnrollmentsHandler)
			student.GET("/courses/:courseID/enrollment", r.enrollmentHandler.GetEnrollmentStatusHandler)
			student.POST("/courses/:courseID/enroll", r.enrollmentHandler.EnrollHandler)
			student.DELETE("/courses/:courseID/enroll", r.enrollmentHandler.UnenrollHandler)
		}

		// Course management routes (admins only)
		admin := protected.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/courses", r.courseHandler.CreateCourseHandler)
			admin.PUT("/courses/:courseID", r.courseHandler.UpdateCourseHandler)
			admin.DELETE("/courses/:courseID", r.courseHandler.DeleteCourseHandler)
		}
	}

	// Logout route (no authentication required, just accept the refresh token from the request body and invalidate the session)
	v1.POST("/logout", r.userHandler.Logout)
}
