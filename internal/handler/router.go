package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-labs/uni-enroll-api/internal/middleware"
	"github.com/campus-labs/uni-enroll-api/internal/models"
	"github.com/campus-labs/uni-enroll-api/internal/service"
)

// Handlers bundles the HTTP handlers registered on the router.
type Handlers struct {
	Auth        *AuthHandler
	Students    *StudentHandler
	Enrollments *EnrollmentHandler
	Subjects    *SubjectHandler
	Admin       *AdminHandler
	Reports     *ReportHandler
	Metrics     *MetricsHandler
}

// RegisterRoutes mounts every API route under the prefix. Registration and
// the catalog listing are public; everything else requires a token, with the
// admin surface restricted to the ADMIN role and student self-service to the
// owning student.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)

	api.POST("/students", h.Students.Register)
	api.POST("/auth/login", h.Auth.LoginStudent)
	api.POST("/auth/admin/login", h.Auth.LoginAdmin)
	api.GET("/subjects", h.Subjects.List)
	api.GET("/subjects/:id", h.Subjects.Get)

	authed := api.Group("")
	authed.Use(middleware.JWT(auth))
	{
		authed.POST("/auth/logout", h.Auth.Logout)

		self := authed.Group("/students/:id")
		self.Use(middleware.RBAC(string(models.RoleAdmin), "SELF"))
		{
			self.GET("", h.Students.Get)
			self.PUT("/password", h.Students.ChangePassword)
			self.GET("/enrollments", h.Enrollments.List)
			self.POST("/enrollments", h.Enrollments.Enroll)
			self.POST("/enrollments/random", h.Enrollments.EnrollRandom)
			self.DELETE("/enrollments/:subjectId", h.Enrollments.Unenroll)
		}

		admin := authed.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.POST("/subjects", h.Subjects.Create)
			admin.GET("/admin/students", h.Admin.ListStudents)
			admin.DELETE("/admin/students", h.Admin.ClearAll)
			admin.DELETE("/admin/students/:id", h.Admin.RemoveStudent)
			admin.GET("/admin/grades", h.Admin.GroupByGrade)
			admin.GET("/admin/pass-fail", h.Admin.CategorizePassFail)
			admin.GET("/admin/reports/grades", h.Reports.GradeReport)
			admin.GET("/admin/reports/students", h.Reports.StudentReport)
			admin.GET("/admin/metrics", h.Metrics.Snapshot)
		}
	}
}
