package app

import (
	"lingua_edu_backend/docs"
	"lingua_edu_backend/internal/config"
	"lingua_edu_backend/internal/middleware"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	router.POST("/api/auth/login", c.auth.Login)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.SchoolScopeMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		a.registerQuestionRoutes(authGroup, c)
		a.registerChallengeRoutes(authGroup, c)
		a.registerSchoolRoutes(authGroup, c)

		teacherGroup := authGroup.Group("/media")
		teacherGroup.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacherGroup.POST("/upload", c.media.UploadMedia)
		}

		adminGroup := authGroup.Group("/auth")
		adminGroup.Use(middleware.RoleMiddleware(model.Admin))
		{
			adminGroup.POST("/register", c.auth.Register)
		}
	}
}

func (a *App) registerQuestionRoutes(group *gin.RouterGroup, c *controllers) {
	questions := group.Group("/questions")
	{
		questions.GET("", c.question.ListQuestions)
		questions.GET("/types", c.question.ListQuestionTypes)
		questions.GET("/:id", c.question.GetQuestion)

		// Teachers own the question bank; students only read.
		write := questions.Group("")
		write.Use(middleware.RoleMiddleware(model.Teacher))
		{
			write.POST("/image-to-multiple-choices", c.question.CreateImageToMultipleChoices)
			write.POST("/wordbox", c.question.CreateWordbox)
			write.POST("/word-associations", c.question.CreateWordAssociations)
			write.POST("/memory-match", c.question.CreateMemoryMatch)
			write.POST("/unscramble", c.question.CreateUnscramble)
			write.POST("/tenses", c.question.CreateTenses)
			write.POST("/tag-it", c.question.CreateTagIt)
			write.POST("/fill-in-the-blanks", c.question.CreateFillInTheBlanks)
			write.POST("/multiple-choice", c.question.CreateMultipleChoice)
			write.POST("/true-false", c.question.CreateTrueFalse)
			write.POST("/listen-and-choose", c.question.CreateListenAndChoose)
			write.POST("/topic-based-audio", c.question.CreateTopicBasedAudio)
			write.POST("/dictation", c.question.CreateDictation)
			write.POST("/read-it", c.question.CreateReadIt)
			write.POST("/fast-test", c.question.CreateFastTest)
			write.POST("/essay", c.question.CreateEssay)
			write.POST("/debate", c.question.CreateDebate)
			write.POST("/read-aloud", c.question.CreateReadAloud)
			write.POST("/open-conversation", c.question.CreateOpenConversation)

			write.PUT("/bulk", c.question.BulkUpdateQuestions)
			write.PUT("/:id", c.question.UpdateQuestion)
			write.DELETE("/:id", c.question.DeleteQuestion)
			write.POST("/:id/restore", c.question.RestoreQuestion)
			write.POST("/:id/activate", c.question.ActivateQuestion)
			write.POST("/:id/deactivate", c.question.DeactivateQuestion)
			write.POST("/:id/recalculate-points", c.question.RecalculatePoints)
		}
	}
}

func (a *App) registerChallengeRoutes(group *gin.RouterGroup, c *controllers) {
	challenges := group.Group("/challenges")
	{
		challenges.GET("", c.challenge.ListChallenges)
		challenges.GET("/:id", c.challenge.GetChallenge)

		write := challenges.Group("")
		write.Use(middleware.RoleMiddleware(model.Teacher))
		{
			write.POST("", c.challenge.CreateChallenge)
			write.PUT("/:id", c.challenge.UpdateChallenge)
			write.DELETE("/:id", c.challenge.DeleteChallenge)
			write.GET("/:id/export", c.challenge.ExportChallengeQuestions)
		}
	}
}

func (a *App) registerSchoolRoutes(group *gin.RouterGroup, c *controllers) {
	schools := group.Group("/schools")
	{
		schools.GET("", c.school.ListSchools)
		schools.GET("/:id", c.school.GetSchool)

		staff := schools.Group("")
		staff.Use(middleware.RoleMiddleware(model.Teacher))
		{
			staff.GET("/:id/students", c.school.ListStudents)
			staff.GET("/:id/question-stats", c.question.GetSchoolStats)
			staff.GET("/:id/question-stats/export", c.school.ExportSchoolStats)
		}

		admin := schools.Group("")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("", c.school.CreateSchool)
		}
	}
}
