package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lilnurik/uniadmit/internal/app/controllers"
	"github.com/lilnurik/uniadmit/internal/middleware"
	"github.com/lilnurik/uniadmit/internal/pkg/auth"
)

// Controllers groups the HTTP handlers wired into the router.
type Controllers struct {
	Auth        *controllers.AuthController
	Faculty     *controllers.FacultyController
	ExamDate    *controllers.ExamDateController
	Application *controllers.ApplicationController
}

// RegisterRoutes mounts the API under /api. Public routes serve the intake
// form; everything under /api/admin requires a bearer token.
func RegisterRoutes(router *gin.Engine, c Controllers, jwtService *auth.JWTService) {
	api := router.Group("/api")

	// Public surface
	api.POST("/token", c.Auth.Login)

	api.GET("/faculties", c.Faculty.GetGrouped)
	api.GET("/faculties/available", c.Faculty.GetAvailable)

	api.GET("/exam-dates", c.ExamDate.List)
	api.GET("/exam-dates/available", c.ExamDate.ListAvailable)
	api.GET("/exam-dates/:id", c.ExamDate.GetByID)

	api.POST("/applications", c.Application.Create)
	api.GET("/applications/check", c.Application.LookupByPhone)
	api.POST("/applications/:id/documents", c.Application.AddDocument)

	// Admin surface
	admin := api.Group("/admin")
	admin.Use(middleware.JWTAuthMiddleware(jwtService))
	{
		admin.POST("/faculties", c.Faculty.Create)
		admin.PUT("/faculties/:id", c.Faculty.Update)
		admin.DELETE("/faculties/:id", c.Faculty.Delete)
		admin.POST("/faculties/:id/exam-dates/:examDateId", c.Faculty.LinkExamDate)
		admin.DELETE("/faculties/:id/exam-dates/:examDateId", c.Faculty.UnlinkExamDate)

		admin.POST("/exam-dates", c.ExamDate.Create)
		admin.PUT("/exam-dates/:id", c.ExamDate.Update)
		admin.DELETE("/exam-dates/:id", c.ExamDate.Delete)

		admin.GET("/applications", c.Application.List)
		admin.GET("/applications/:id", c.Application.GetByID)
		admin.PUT("/applications/:id", c.Application.Update)
		admin.DELETE("/applications/:id", c.Application.Delete)
		admin.GET("/applications/:id/documents", c.Application.ListDocuments)
	}
}
