package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/api/handlers"
	"github.com/komunitech/komunitech/internal/api/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, authMiddleware *middleware.Auth) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// --- public ---
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.GET("/categories", h.Category.ListCategories)
	r.GET("/projects", h.Project.ListProjects)
	r.GET("/projects/:id", h.Project.GetProject)
	r.GET("/projects/:id/stats", h.Project.GetProjectStats)
	r.GET("/projects/:id/collaborators", h.Project.ListCollaborators)
	r.GET("/projects/:id/requirements", h.Requirement.ListProjectRequirements)
	r.GET("/requirements/:id", h.Requirement.GetRequirement)
	r.GET("/requirements/:id/comments", h.Comment.ListComments)
	r.GET("/requirements/:id/supporters", h.Support.ListSupporters)
	r.GET("/users/:id/comments", h.Comment.ListUserComments)
	r.GET("/users/:id/supports", h.Support.ListUserSupports)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(), authMiddleware.CurrentUser())
	{
		auth.GET("/ws/notifications", h.Stream.Stream)

		auth.GET("/users/me", h.User.Me)
		auth.GET("/users/me/stats", h.Stats.MyStats)
		auth.PUT("/users/me/password", h.User.ChangePassword)
		auth.GET("/users/:id", h.User.GetUser)
		auth.PUT("/users/:id", authMiddleware.UserOrAdmin(), h.User.UpdateProfile)

		projects := auth.Group("/projects")
		{
			projects.POST("", h.Project.CreateProject)
			projects.PUT("/:id", h.Project.UpdateProject)
			projects.DELETE("/:id", h.Project.DeleteProject)
			projects.PUT("/:id/status", h.Project.UpdateProjectStatus)
			projects.POST("/:id/collaborators", h.Project.AddCollaborator)
			projects.DELETE("/:id/collaborators/:user_id", h.Project.RemoveCollaborator)
			projects.POST("/:id/requirements", h.Requirement.CreateRequirement)
		}

		requirements := auth.Group("/requirements")
		{
			requirements.PUT("/:id", h.Requirement.UpdateRequirement)
			requirements.DELETE("/:id", h.Requirement.DeleteRequirement)
			requirements.PUT("/:id/status", h.Requirement.UpdateStatus)
			requirements.POST("/:id/comments", h.Comment.CreateComment)
			requirements.GET("/:id/support", h.Support.GetSupportStatus)
			requirements.POST("/:id/support", h.Support.CreateSupport)
			requirements.DELETE("/:id/support", h.Support.RemoveSupport)
			requirements.POST("/:id/support/toggle", h.Support.ToggleSupport)
		}

		comments := auth.Group("/comments")
		{
			comments.PUT("/:id", h.Comment.UpdateComment)
			comments.DELETE("/:id", h.Comment.DeleteComment)
		}

		notifications := auth.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListNotifications)
			notifications.GET("/unread-count", h.Notification.UnreadCount)
			notifications.PUT("/read-all", h.Notification.MarkAllRead)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
			notifications.DELETE("/:id", h.Notification.DeleteNotification)
		}

		auth.POST("/uploads/images", h.Upload.UploadImage)

		admin := auth.Group("/admin")
		admin.Use(authMiddleware.Admin())
		{
			admin.POST("/categories", h.Category.CreateCategory)
			admin.PUT("/categories/:id", h.Category.UpdateCategory)
			admin.DELETE("/categories/:id", h.Category.DeleteCategory)

			admin.GET("/stats", h.Stats.Dashboard)

			admin.GET("/users", h.User.ListUsers)
			admin.PUT("/users/:id/role", h.User.UpdateRole)
			admin.PUT("/users/:id/active", h.User.SetActive)
			admin.DELETE("/users/:id", h.User.DeleteUser)

			admin.GET("/requirements", h.Requirement.ListRequirements)
			admin.PUT("/requirements/bulk/status", h.Requirement.BulkUpdateStatus)
			admin.POST("/requirements/bulk/delete", h.Requirement.BulkDelete)

			admin.GET("/comments/recent", h.Comment.RecentComments)
			admin.GET("/comments/stats", h.Comment.CommentStats)
			admin.POST("/comments/:id/moderate", h.Comment.ModerateComment)

			admin.GET("/audit-logs", h.Audit.GetAuditLogs)

			admin.GET("/notifications/stats", h.Notification.Stats)
			admin.POST("/notifications/bulk", h.Notification.Broadcast)
			admin.POST("/notifications/purge", h.Notification.PurgeOld)
		}
	}
}
