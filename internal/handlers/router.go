package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adetops/edu-progress-tracker/internal/cache"
	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
	"github.com/Adetops/edu-progress-tracker/internal/services"
	"github.com/Adetops/edu-progress-tracker/internal/utils"
)

type HandlerManager struct {
	authHandler      *AuthHandler
	studentHandler   *StudentHandler
	courseHandler    *CourseHandler
	activityHandler  *ActivityHandler
	progressHandler  *ProgressHandler
	dashboardHandler *DashboardHandler
	userHandler      *UserHandler
	exportHandler    *ExportHandler
	authMiddleware   *AuthMiddleware
	repo             repositories.Repository
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	repo repositories.Repository,
	cacheManager *cache.CacheManager,
) *HandlerManager {
	authMiddleware := NewAuthMiddleware(serviceManager.User(), repo.User(), cacheManager)

	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.User(), logger),
		studentHandler:   NewStudentHandler(serviceManager.Student(), logger),
		courseHandler:    NewCourseHandler(serviceManager.Course(), logger),
		activityHandler:  NewActivityHandler(serviceManager.Activity(), logger),
		progressHandler:  NewProgressHandler(serviceManager.Progress(), logger),
		dashboardHandler: NewDashboardHandler(serviceManager.Dashboard(), serviceManager.Student(), logger),
		userHandler:      NewUserHandler(serviceManager.User(), logger),
		exportHandler:    NewExportHandler(serviceManager.Export(), logger),
		authMiddleware:   authMiddleware,
		repo:             repo,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthCheck)

	// Public auth routes
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", hm.authHandler.Register)
		auth.POST("/login", hm.authHandler.Login)
	}

	// API v1 routes with authentication
	v1 := router.Group("/api/v1")
	v1.Use(hm.authMiddleware.Authenticate()) // Apply authentication to all API routes
	{
		// Authenticated account routes
		v1.GET("/auth/me", hm.authHandler.GetProfile)
		v1.PUT("/auth/password", hm.authHandler.ChangePassword)

		// Student routes
		students := v1.Group("/students")
		{
			// Create/modify students - Teachers and Admins only
			students.POST("", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.studentHandler.CreateStudent)
			students.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.studentHandler.UpdateStudent)
			students.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.studentHandler.DeleteStudent)

			// Listing is staff-only; single-student reads enforce
			// self-access inside the handler so students and parents
			// can still reach their own record.
			students.GET("", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.studentHandler.ListStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.GET("/:id/details", hm.studentHandler.GetStudentDetail)
		}

		// Course routes
		courses := v1.Group("/courses")
		{
			courses.POST("", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.CreateCourse)
			courses.PUT("/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.courseHandler.DeleteCourse)

			// View courses - All authenticated users
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
		}

		// Activity routes
		activities := v1.Group("/activities")
		{
			activities.POST("", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.activityHandler.RecordActivity)
			activities.DELETE("/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.activityHandler.DeleteActivity)
			activities.GET("", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.activityHandler.ListActivities)
			activities.GET("/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.activityHandler.GetActivity)
		}

		// Progress routes
		progress := v1.Group("/progress")
		{
			// Student progress enforces self-access inside the handler
			progress.GET("/students/:id", hm.progressHandler.GetStudentProgress)

			// Course-wide reports - Teachers and Admins only
			progress.GET("/courses/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.progressHandler.GetCourseReport)
		}

		// Dashboard route - role-sensitive inside the handler
		v1.GET("/dashboard/stats", hm.dashboardHandler.GetDashboardStats)

		// Export routes
		exports := v1.Group("/exports")
		{
			// Student export enforces self-access inside the handler
			exports.GET("/students/:id", hm.exportHandler.ExportStudentProgress)
			exports.GET("/courses/:id", hm.authMiddleware.RequireRole(models.RoleTeacher, models.RoleAdmin), hm.exportHandler.ExportCourseReport)
		}

		// User management routes - Admins only
		users := v1.Group("/users")
		users.Use(hm.authMiddleware.RequireRole(models.RoleAdmin))
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id/active", hm.userHandler.SetUserActive)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
