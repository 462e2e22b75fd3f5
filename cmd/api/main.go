package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	handlerHttp "github.com/coursehub-io/coursehub/internal/handler/http"
	redisclient "github.com/coursehub-io/coursehub/internal/infrastructure/cache"
	"github.com/coursehub-io/coursehub/internal/infrastructure/config"
	database "github.com/coursehub-io/coursehub/internal/infrastructure/database"
	"github.com/coursehub-io/coursehub/internal/infrastructure/jwt"
	"github.com/coursehub-io/coursehub/internal/infrastructure/logger"
	passwordservice "github.com/coursehub-io/coursehub/internal/infrastructure/password_service"
	"github.com/coursehub-io/coursehub/internal/infrastructure/repository/mongodb"
	"github.com/coursehub-io/coursehub/internal/infrastructure/store"
	"github.com/coursehub-io/coursehub/internal/infrastructure/uuidgen"
	"github.com/coursehub-io/coursehub/internal/infrastructure/validator"
	"github.com/coursehub-io/coursehub/internal/session"
	"github.com/coursehub-io/coursehub/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Get MongoDB URI and DB name from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable not set")
	}
	dbName := os.Getenv("MONGODB_DB_NAME")
	if dbName == "" {
		log.Fatal("MONGODB_DB_NAME environment variable not set")
	}

	// Establish MongoDB connection
	mongoClient, err := database.NewMongoDBClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect()

	// Register custom validators
	validator.RegisterCustomValidators()

	// Initialize Gin router
	router := gin.Default()

	// Dependency Injection: Repositories
	db := mongoClient.Client.Database(dbName)
	userRepo := mongodb.NewMongoUserRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db.Collection("tokens"))
	courseRepo := mongodb.NewCourseRepository(db)
	enrollmentRepo := mongodb.NewEnrollmentRepository(db)
	if err := enrollmentRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create enrollment indexes: %v", err)
	}

	// Dependency Injection: Services
	hasher := passwordservice.NewHasher()
	appConfig := config.NewConfig()
	accessSecret := os.Getenv("JWT_ACCESS_SECRET")
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		log.Fatal("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET environment variables not set")
	}
	jwtManager := jwt.NewJWTManager(accessSecret, refreshSecret, "coursehub", appConfig.GetAccessTokenExpiry(), appConfig.GetRefreshTokenExpiry())
	jwtService := jwt.NewJWTService(jwtManager)
	appLogger := logger.NewStdLogger()
	appValidator := validator.NewValidator()
	uuidGenerator := uuidgen.NewGenerator()

	// Session wiring: the store tracks the embedded single-principal
	// session; the context resolver serves per-request principals on
	// the HTTP surface.
	sessionStore := session.NewStore()
	sessionResolver := session.NewContextResolver()

	// Dependency Injection: Usecases
	authUsecase := usecase.NewAuthUsecase(userRepo, tokenRepo, hasher, jwtService, sessionStore, appLogger, appConfig, appValidator, uuidGenerator)
	catalogUsecase := usecase.NewCatalogUsecase(courseRepo, sessionResolver, uuidGenerator, appLogger)
	enrollmentUsecase := usecase.NewEnrollmentUsecase(enrollmentRepo, courseRepo, sessionResolver, uuidGenerator, appLogger)

	// Optional Dependency Injection: Redis cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		rdb := redisclient.NewRedisFromURL(context.Background(), redisURL)
		if rdb != nil {
			defer redisclient.Close(rdb)
			catalogCache := store.NewCatalogCacheStore(rdb)
			catalogUsecase.SetCatalogCache(catalogCache)
			enrollmentUsecase.SetCatalogCache(catalogCache)
		}
	}

	// Setup API routes
	appRouter := handlerHttp.NewRouter(authUsecase, catalogUsecase, enrollmentUsecase, jwtService)
	appRouter.SetupRoutes(router)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
