package routes

import (
	"github.com/gin-gonic/gin"

	"coolcare/controllers"
	"coolcare/middleware"
)

// SetupRoutes configures all application routes
func SetupRoutes(r *gin.Engine) {
	// Public routes (no authentication required)
	public := r.Group("/api")
	{
		public.POST("/auth/login", controllers.Login)

		// Complaint intake form
		public.POST("/complaints", controllers.CreateComplaint)
		public.GET("/buildings", controllers.GetBuildings)
		public.GET("/time-slots", controllers.GetTimeSlots)
	}

	// Protected routes (authentication required)
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/refresh", controllers.RefreshToken)
		protected.GET("/profile", controllers.GetUserProfile)
		protected.POST("/profile/change-password", controllers.ChangePassword)

		// Staff routes (employees see only their assigned complaints)
		staff := protected.Group("")
		staff.Use(middleware.EmployeeAuthMiddleware())
		{
			staff.GET("/complaints", controllers.GetComplaints)
			staff.GET("/complaints/:id", controllers.GetComplaintByID)

			staff.POST("/complaints/:id/responses", controllers.CreateResponse)
			staff.GET("/complaints/:id/responses", controllers.GetResponses)
			staff.POST("/complaints/:id/responses/:rid/complete", controllers.CompleteResponse)

			staff.POST("/complaints/:id/worktime", controllers.CreateWorkTime)
			staff.GET("/complaints/:id/worktime", controllers.GetWorkTimes)
			staff.PATCH("/worktime/:id/finish", controllers.FinishWorkTime)
		}

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/dashboard", controllers.AdminDashboard)

			admin.POST("/users", controllers.CreateUser)
			admin.GET("/users", controllers.GetUsers)
			admin.GET("/users/:id", controllers.GetUserByID)
			admin.DELETE("/users/:id", controllers.DeleteUser)

			admin.POST("/buildings", controllers.CreateBuilding)
			admin.PUT("/buildings/:id", controllers.UpdateBuilding)
			admin.DELETE("/buildings/:id", controllers.DeleteBuilding)

			admin.PATCH("/complaints/:id/assign", controllers.AssignComplaint)
			admin.DELETE("/complaints/:id", controllers.DeleteComplaint)

			// Report subsystem
			admin.GET("/reports/options", controllers.GetReportOptions)
			admin.POST("/reports/preview", controllers.PreviewReport)
			admin.POST("/reports/generate", controllers.GenerateReport)
		}
	}
}
