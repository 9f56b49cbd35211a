package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prepsphere/backend/internal/app/controllers"
	"github.com/prepsphere/backend/internal/app/models"
	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/middleware"
)

// Controllers bundles every controller the router needs
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Profile      *controllers.ProfileController
	File         *controllers.FileController
	Job          *controllers.JobController
	Event        *controllers.EventController
	Notification *controllers.NotificationController
	Admin        *controllers.AdminController
	Webhook      *controllers.WebhookController
	Interview    *controllers.InterviewController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	reviewers := middleware.RoleRequired(models.RoleTPO, models.RoleAdmin)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh-token", c.Auth.RefreshToken)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// Identity-provider webhook, guarded by a shared secret instead of JWT
	v1.POST("/webhooks/users", c.Webhook.HandleUserEvent)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)

		users := authenticated.Group("/users")
		{
			users.GET("/me", c.User.GetMe)
			users.PUT("/me", c.User.UpdateMe)

			users.GET("", adminOnly, c.User.ListUsers)
			users.GET("/:id", reviewers, c.User.GetUser)
			users.PUT("/:id/role", adminOnly, c.User.SetRole)
			users.PUT("/:id/active", adminOnly, c.User.SetActive)
		}

		profiles := authenticated.Group("/profiles")
		{
			profiles.GET("/me", c.Profile.GetMyProfile)
			profiles.PUT("/me", c.Profile.UpsertMyProfile)

			profiles.GET("", reviewers, c.Profile.ListProfiles)
			profiles.GET("/:id", reviewers, c.Profile.GetProfile)
			profiles.POST("/:id/review", reviewers, c.Profile.ReviewProfile)
			profiles.PUT("/:id/placement", reviewers, c.Profile.UpdatePlacement)
			profiles.GET("/:id/versions", reviewers, c.Profile.ListProfileVersions)
		}

		files := authenticated.Group("/files")
		{
			files.POST("", c.File.Upload)
			files.GET("/me", c.File.ListMyFiles)
			files.GET("/:id", c.File.GetFile)
			files.GET("/:id/download", c.File.Download)
			files.GET("/:id/versions", c.File.ListFileVersions)

			files.GET("", reviewers, c.File.ListFiles)
			files.POST("/:id/review", reviewers, c.File.ReviewFile)
		}

		jobs := authenticated.Group("/jobs")
		{
			jobs.GET("", c.Job.ListJobs)
			jobs.GET("/:id", c.Job.GetJob)
			jobs.POST("/:id/apply", c.Job.Apply)

			jobs.POST("", reviewers, c.Job.CreateJob)
			jobs.PUT("/:id", reviewers, c.Job.UpdateJob)
			jobs.GET("/:id/applications", reviewers, c.Job.ListApplications)
		}
		authenticated.GET("/applications/me", c.Job.MyApplications)
		authenticated.PUT("/applications/:id", reviewers, c.Job.UpdateApplication)

		events := authenticated.Group("/events")
		{
			events.GET("", c.Event.ListEvents)
			events.GET("/:id", c.Event.GetEvent)
			events.POST("/:id/register", c.Event.RegisterForEvent)

			events.POST("", reviewers, c.Event.CreateEvent)
			events.PUT("/:id", reviewers, c.Event.UpdateEvent)
			events.GET("/:id/registrations", reviewers, c.Event.ListRegistrations)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", c.Notification.ListNotifications)
			notifications.POST("/:id/read", c.Notification.MarkRead)
			notifications.POST("/read-all", c.Notification.MarkAllRead)

			notifications.POST("/send", reviewers, c.Notification.Send)
			notifications.POST("/broadcast", reviewers, c.Notification.Broadcast)
		}

		authenticated.POST("/interview/feedback", c.Interview.Feedback)

		admin := authenticated.Group("/admin", reviewers)
		{
			admin.GET("/analytics", c.Admin.Analytics)
			admin.GET("/audit-logs", c.Admin.AuditLogs)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, dto.NewStructuredResponse(gin.H{"status": "ok"}, ""))
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
