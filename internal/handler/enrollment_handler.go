package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	"github.com/campus-labs/uni-enroll-api/internal/service"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/response"
)

// EnrollmentHandler wires HTTP endpoints to the enrollment service.
type EnrollmentHandler struct {
	service *service.EnrollmentService
}

// NewEnrollmentHandler creates a new handler.
func NewEnrollmentHandler(svc *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary List enrollments
// @Description List a student's enrollments with subject names
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	details, err := h.service.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Enroll godoc
// @Summary Enroll in subject
// @Description Enroll the student in a subject; a random mark is assigned
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body models.EnrollRequest true "Subject to enroll in"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{id}/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req models.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}

	detail, err := h.service.Enroll(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// EnrollRandom godoc
// @Summary Enroll in random subject
// @Description Enroll the student in a randomly chosen eligible subject
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{id}/enrollments/random [post]
func (h *EnrollmentHandler) EnrollRandom(c *gin.Context) {
	detail, err := h.service.EnrollRandom(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, detail)
}

// Unenroll godoc
// @Summary Remove enrollment
// @Description Remove the student's enrollment in the subject
// @Tags Enrollments
// @Produce json
// @Param id path string true "Student ID"
// @Param subjectId path string true "Subject ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students/{id}/enrollments/{subjectId} [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	if err := h.service.Unenroll(c.Request.Context(), c.Param("id"), c.Param("subjectId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
