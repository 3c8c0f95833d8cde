package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-labs/uni-enroll-api/internal/service"
	"github.com/campus-labs/uni-enroll-api/pkg/response"
)

// AdminHandler exposes the privileged roster views and mutations.
type AdminHandler struct {
	service *service.AdminService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{service: svc}
}

// ListStudents godoc
// @Summary List students
// @Description List all registered students in registration order
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/students [get]
func (h *AdminHandler) ListStudents(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListStudents(c.Request.Context()))
}

// GroupByGrade godoc
// @Summary Group enrollments by grade
// @Description Group every enrollment under its letter grade
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/grades [get]
func (h *AdminHandler) GroupByGrade(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.GroupByGrade(c.Request.Context()))
}

// CategorizePassFail godoc
// @Summary Partition enrollments into pass and fail
// @Description Partition every enrollment by the pass mark
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/pass-fail [get]
func (h *AdminHandler) CategorizePassFail(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.CategorizePassFail(c.Request.Context()))
}

// RemoveStudent godoc
// @Summary Remove student
// @Description Remove a student from the roster
// @Tags Admin
// @Produce json
// @Param id path string true "Student ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/students/{id} [delete]
func (h *AdminHandler) RemoveStudent(c *gin.Context) {
	if err := h.service.RemoveStudent(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClearAll godoc
// @Summary Clear roster
// @Description Remove every student from the roster
// @Tags Admin
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /admin/students [delete]
func (h *AdminHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
