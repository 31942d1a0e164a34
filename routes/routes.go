package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"

	"classtrack_go/controllers"
	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/services"
	"classtrack_go/services/authprovider"
	"classtrack_go/store"
)

// SetupRoutes configures all application routes under /api. Every route
// passes through the session resolver; the per-group gates decide what
// an anonymous or under-privileged caller may reach.
func SetupRoutes(app *fiber.App, st *store.Store, provider authprovider.Exchanger, rc *redis.Client, rateLimitPerMin int) {
	authController := &controllers.AuthController{Store: st, Provider: provider}
	userController := &controllers.UserController{Store: st}
	classController := &controllers.ClassController{Store: st}
	attendanceController := &controllers.AttendanceController{Service: services.NewAttendanceService(st)}
	dashboardController := &controllers.DashboardController{Service: services.NewDashboardService(st)}

	api := app.Group("/api", middleware.SessionAuth(st))

	// Authentication routes, rate limited (the exchange hits the
	// external provider).
	limiter := middleware.NewRateLimiter(rc, rateLimitPerMin)
	auth := api.Group("/auth", limiter.Handler())
	auth.Post("/session", authController.CreateSession)
	auth.Post("/logout", authController.Logout)
	auth.Get("/me", authController.Me)

	// User management routes (admin only)
	users := api.Group("/users", middleware.RequireRole(models.RoleAdmin))
	users.Post("/", userController.CreateUser)
	users.Get("/", userController.GetUsers)
	users.Put("/:id/role", userController.UpdateUserRole)

	// Class management routes
	classes := api.Group("/classes")
	classes.Post("/", middleware.RequireRole(models.RoleAdmin), classController.CreateClass)
	classes.Get("/", middleware.RequireAuth(), classController.GetClasses)
	classes.Put("/:id/students", middleware.RequireRole(models.RoleAdmin), classController.AssignStudent)

	// Attendance routes. The student route is registered first so that
	// /attendance/student/:student_id never matches :class_id.
	attendance := api.Group("/attendance")
	attendance.Get("/student/:student_id", middleware.RequireAuth(), attendanceController.GetStudentAttendance)
	attendance.Post("/:class_id", middleware.RequireRole(models.RoleTeacher, models.RoleAdmin), attendanceController.MarkAttendance)
	attendance.Get("/:class_id", middleware.RequireAuth(), attendanceController.GetClassAttendance)

	// Dashboard
	api.Get("/dashboard/stats", middleware.RequireAuth(), dashboardController.GetStats)
}
