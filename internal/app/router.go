package app

import (
	"exam_portal_backend/docs"
	"exam_portal_backend/internal/config"
	"exam_portal_backend/internal/middleware"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api/v1")
	{
		public.GET("/health", c.health.Health)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	authGroup := router.Group("/api/v1")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerTeacherRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
	}
}

// registerTeacherRoutes 教师侧：题库/题目/考试管理与成绩汇总
func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers) {
	teacher := group.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/question-banks", c.questionBank.Create)
		teacher.GET("/question-banks", c.questionBank.List)
		teacher.GET("/question-banks/:id", c.questionBank.Get)
		teacher.GET("/question-banks/:id/questions", c.questionBank.Questions)
		teacher.DELETE("/question-banks/:id", c.questionBank.Delete)

		teacher.POST("/questions", c.question.Create)
		teacher.GET("/questions/:id", c.question.Get)
		teacher.DELETE("/questions/:id", c.question.Delete)

		teacher.POST("/exams", c.exam.Create)
		teacher.DELETE("/exams/:id", c.exam.Delete)
		teacher.GET("/exams/:id/sections/:section/summary", c.exam.SectionDetail)
		teacher.GET("/exams/:id/results", c.result.ExamResults)
		teacher.GET("/exams/:id/evaluation/:studentId", c.result.StudentEvaluation)
		teacher.POST("/exams/:id/evaluate", c.result.EvaluateAll)
		teacher.GET("/students/:studentId/results", c.result.StudentHistory)
	}
}

// registerStudentRoutes 学生侧：考试入口、分区试卷、答题与成绩
func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/exams", c.exam.List)
	group.GET("/exams/:id", c.exam.Get)
	group.GET("/exams/:id/access", c.exam.Access)
	group.GET("/exams/:id/sections", c.exam.Sections)

	student := group.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/exams/:id/confirm", c.exam.ConfirmEntry)
		student.GET("/exams/:id/sections/:section", c.exam.Section)
		student.POST("/exams/:id/answers", c.answer.Submit)
		student.GET("/exams/:id/results/me", c.result.MyResult)
		student.GET("/results/me", c.result.MyExams)
	}
}
