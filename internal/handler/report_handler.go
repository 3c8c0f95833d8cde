package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-labs/uni-enroll-api/internal/service"
	"github.com/campus-labs/uni-enroll-api/pkg/response"
)

// ReportHandler exposes report downloads.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// GradeReport godoc
// @Summary Grade report download
// @Description Download the per-enrollment grade grouping as CSV or PDF
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/reports/grades [get]
func (h *ReportHandler) GradeReport(c *gin.Context) {
	report, err := h.service.GradeReport(c.Request.Context(), c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveReport(c, report)
}

// StudentReport godoc
// @Summary Student roster download
// @Description Download the full roster listing as CSV or PDF
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/reports/students [get]
func (h *ReportHandler) StudentReport(c *gin.Context) {
	report, err := h.service.StudentReport(c.Request.Context(), c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	serveReport(c, report)
}

func serveReport(c *gin.Context, report *service.ReportFile) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
