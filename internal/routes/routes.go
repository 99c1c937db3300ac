package routes

import (
	"github.com/alanluk2226/Workoutapp/internal/config"
	"github.com/alanluk2226/Workoutapp/internal/handlers"
	"github.com/alanluk2226/Workoutapp/internal/middleware"
	"github.com/alanluk2226/Workoutapp/internal/repository"
	"github.com/alanluk2226/Workoutapp/internal/services"
	coursews "github.com/alanluk2226/Workoutapp/internal/websocket"
	"github.com/go-redis/redis/v8"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Dependencies are the process-level resources the routes are built on.
// Redis and Storage are optional.
type Dependencies struct {
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Storage services.StorageService
	Hub     *coursews.Hub
	Logger  zerolog.Logger
}

type Services struct {
	Auth        *services.AuthService
	Enrollments *services.EnrollmentService
	Courses     *services.CourseService
	Coaches     *services.CoachService
	Workouts    *services.WorkoutService
	Users       *services.UserService
}

func NewServices(cfg *config.Config, deps Dependencies) *Services {
	userRepo := repository.NewUserRepository(deps.DB)
	coachRepo := repository.NewCoachRepository(deps.DB)
	courseRepo := repository.NewCourseRepository(deps.DB)
	enrollmentRepo := repository.NewEnrollmentRepository(deps.DB)
	workoutRepo := repository.NewWorkoutRepository(deps.DB)

	var denylist services.TokenDenylist = services.NewMemoryTokenDenylist()
	if deps.Redis != nil {
		denylist = services.NewRedisTokenDenylist(deps.Redis)
	}

	var notifier services.SeatNotifier
	if deps.Hub != nil {
		notifier = deps.Hub
	}

	enrollments := services.NewEnrollmentService(
		repository.NewEnrollmentTxRunner(deps.DB),
		courseRepo,
		coachRepo,
		enrollmentRepo,
		notifier,
		deps.Logger,
	)

	return &Services{
		Auth:        services.NewAuthService(userRepo, denylist, cfg.JWTSecret, cfg.JWTTTL, deps.Logger),
		Enrollments: enrollments,
		Courses:     services.NewCourseService(courseRepo),
		Coaches:     services.NewCoachService(coachRepo, courseRepo, deps.Storage, deps.Logger),
		Workouts:    services.NewWorkoutService(workoutRepo),
		Users:       services.NewUserService(userRepo, enrollmentRepo, enrollments, deps.Logger),
	}
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, deps Dependencies, svc *Services) error {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	courseHandler := handlers.NewCourseHandler(svc.Enrollments)
	coachHandler := handlers.NewCoachHandler(svc.Coaches)
	workoutHandler := handlers.NewWorkoutHandler(svc.Workouts)
	adminHandler := handlers.NewAdminHandler(svc.Coaches, svc.Courses, svc.Enrollments, svc.Users)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	authRequired := middleware.AuthRequired(svc.Auth)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	api.Post("/signup", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authRequired, authHandler.Logout)
	api.Get("/current-user", authRequired, authHandler.CurrentUser)

	api.Get("/courses", courseHandler.ListCourses)
	api.Post("/courses/:courseId/enroll", authRequired, courseHandler.Enroll)
	api.Post("/courses/:courseId/unenroll", authRequired, courseHandler.Unenroll)
	api.Get("/my-courses", authRequired, courseHandler.MyCourses)

	api.Get("/coaches", coachHandler.ListCoaches)
	api.Get("/coaches/:coachId", coachHandler.GetCoach)

	workouts := api.Group("/workouts", authRequired)
	workouts.Post("", workoutHandler.Create)
	workouts.Get("", workoutHandler.List)
	workouts.Get("/range", workoutHandler.Range)
	workouts.Get("/summary", workoutHandler.Summary)
	workouts.Get("/:id", workoutHandler.Get)
	workouts.Put("/:id", workoutHandler.Update)
	workouts.Delete("/:id", workoutHandler.Delete)

	admin := api.Group("/admin", authRequired, middleware.AdminRequired())
	admin.Get("/coaches", adminHandler.ListCoaches)
	admin.Post("/coaches", adminHandler.CreateCoach)
	admin.Put("/coaches/:coachId", adminHandler.UpdateCoach)
	admin.Delete("/coaches/:coachId", adminHandler.DeleteCoach)
	admin.Post("/coaches/:coachId/image", adminHandler.UploadCoachImage)
	admin.Get("/courses", adminHandler.ListCourses)
	admin.Post("/courses", adminHandler.CreateCourse)
	admin.Put("/courses/:courseId", adminHandler.UpdateCourse)
	admin.Put("/courses/:courseId/capacity", adminHandler.SetCourseCapacity)
	admin.Post("/courses/:courseId/cancel", adminHandler.CancelCourse)
	admin.Delete("/courses/:courseId", adminHandler.DeleteCourse)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:userId/password", adminHandler.ChangeUserPassword)
	admin.Delete("/users/:userId", adminHandler.DeleteUser)
	admin.Get("/enrollments", adminHandler.ListEnrollments)

	if deps.Hub != nil {
		seatFeed := handlers.NewSeatFeedHandler(deps.Hub)
		api.Get("/ws/courses", seatFeed.RequireUpgrade, websocket.New(seatFeed.HandleWebSocket))
	}

	return registerDocsRoutes(app, cfg)
}
