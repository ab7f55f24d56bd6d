package api

import (
	"net/http"

	"fittrack/coach-app/internal/domain"
	"fittrack/coach-app/internal/service"
	"fittrack/coach-app/internal/session"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all handlers onto the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	professionalService service.ProfessionalService,
	studentService service.StudentService,
	reportService service.ReportService,
	sessions *session.Manager,
) {
	authHandler := NewAuthHandler(authService)
	sessionHandler := NewSessionHandler(authService, sessions)
	professionalHandler := NewProfessionalHandler(professionalService, studentService, reportService, authService, sessions)
	studentHandler := NewStudentHandler(studentService, authService, sessions)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Session ---
		sessionGroup := protected.Group("/session")
		{
			sessionGroup.GET("", sessionHandler.Get)
			sessionGroup.POST("/students/:studentId", RoleMiddleware(domain.RoleProfessional), sessionHandler.SelectStudent)
			sessionGroup.DELETE("/students", RoleMiddleware(domain.RoleProfessional), sessionHandler.ClearStudent)
			sessionGroup.POST("/logout", sessionHandler.Logout)
		}

		// --- Professional console ---
		proGroup := protected.Group("/professional")
		proGroup.Use(RoleMiddleware(domain.RoleProfessional))
		{
			proGroup.GET("/students", professionalHandler.GetStudents)
			proGroup.POST("/students", professionalHandler.AddStudent)
			proGroup.DELETE("/students/:studentId", professionalHandler.RemoveStudent)
			proGroup.PATCH("/students/:studentId/settings", professionalHandler.UpdateStudentSettings)

			proGroup.GET("/overview", professionalHandler.Overview)

			proGroup.POST("/students/:studentId/plans", professionalHandler.CreatePlan)
			proGroup.PUT("/plans/:planId", professionalHandler.UpdatePlan)
			proGroup.DELETE("/plans/:planId", professionalHandler.DeletePlan)

			proGroup.POST("/plans/:planId/exercises", professionalHandler.AddExercise)
			proGroup.PUT("/exercises/:exerciseId", professionalHandler.UpdateExercise)
			proGroup.DELETE("/exercises/:exerciseId", professionalHandler.DeleteExercise)

			proGroup.POST("/students/:studentId/meals", professionalHandler.AddMeal)
			proGroup.PUT("/meals/:mealId", professionalHandler.UpdateMeal)
			proGroup.DELETE("/meals/:mealId", professionalHandler.DeleteMeal)

			proGroup.POST("/students/:studentId/notices", professionalHandler.SendNotice)
			proGroup.PATCH("/notices/:noticeId/severity", professionalHandler.ChangeNoticeSeverity)
			proGroup.DELETE("/notices/:noticeId", professionalHandler.DeleteNotice)

			proGroup.POST("/students/:studentId/report", professionalHandler.ExportReport)
		}

		// --- Student dashboard ---
		studentGroup := protected.Group("/student")
		studentGroup.Use(RoleMiddleware(domain.RoleStudent))
		{
			studentGroup.POST("/weights", studentHandler.LogWeight)
			studentGroup.GET("/weights", studentHandler.GetWeightHistory)

			studentGroup.POST("/loads", studentHandler.LogLoad)
			studentGroup.GET("/loads", studentHandler.GetLoadHistory)

			studentGroup.GET("/training", studentHandler.GetTrainingWeek)
			studentGroup.GET("/diet", studentHandler.GetDietWeek)

			studentGroup.GET("/notices", studentHandler.GetNotices)
			studentGroup.POST("/notices", studentHandler.SendNotice)
			studentGroup.POST("/notices/:noticeId/read", studentHandler.MarkNoticeRead)
			studentGroup.DELETE("/notices/:noticeId", studentHandler.DeleteNotice)
		}
	}
}
