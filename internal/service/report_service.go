package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/export"
	"github.com/campus-labs/uni-enroll-api/pkg/storage"
)

// Supported report formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

const gradeReportCacheKey = "report:grades"

// ReportFile is a rendered report ready to be served or saved.
type ReportFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ReportService renders admin roster views as downloadable files. Renders
// happen inline; the single-user model needs no job queue.
type ReportService struct {
	admin    *AdminService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	files    *storage.LocalStorage
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(admin *AdminService, files *storage.LocalStorage, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		admin:    admin,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		files:    files,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GradeReport renders the per-enrollment grade grouping as CSV or PDF.
func (s *ReportService) GradeReport(ctx context.Context, format string) (*ReportFile, error) {
	var rows []models.GradeGroupRow
	hit, err := s.cache.Get(ctx, gradeReportCacheKey, &rows)
	if err != nil || !hit {
		rows = s.gradeRows(ctx)
		if setErr := s.cache.Set(ctx, gradeReportCacheKey, rows, s.cacheTTL); setErr != nil {
			s.logger.Warn("failed to cache grade report", zap.Error(setErr))
		}
	}

	dataset := export.Dataset{
		Headers: []string{"grade", "student_id", "student_name", "subject_id", "mark"},
	}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"grade":        string(row.Grade),
			"student_id":   row.StudentID,
			"student_name": row.StudentName,
			"subject_id":   row.SubjectID,
			"mark":         strconv.Itoa(row.Mark),
		})
	}

	return s.render(dataset, "grade report", "grade-report", format)
}

// StudentReport renders the full roster listing as CSV or PDF.
func (s *ReportService) StudentReport(ctx context.Context, format string) (*ReportFile, error) {
	dataset := export.Dataset{
		Headers: []string{"student_id", "name", "email", "enrollment_count"},
	}
	for _, info := range s.admin.ListStudents(ctx) {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"student_id":       info.ID,
			"name":             info.Name,
			"email":            info.Email,
			"enrollment_count": strconv.Itoa(info.EnrollmentCount),
		})
	}

	return s.render(dataset, "student roster", "student-report", format)
}

func (s *ReportService) gradeRows(ctx context.Context) []models.GradeGroupRow {
	groups := s.admin.GroupByGrade(ctx)
	var rows []models.GradeGroupRow
	for _, grade := range models.AllGrades {
		rows = append(rows, groups[grade]...)
	}
	return rows
}

func (s *ReportService) render(dataset export.Dataset, title, prefix, format string) (*ReportFile, error) {
	var (
		data        []byte
		contentType string
		err         error
	)

	switch format {
	case FormatCSV:
		data, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case FormatPDF:
		data, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	filename := fmt.Sprintf("%s-%s.%s", prefix, uuid.NewString(), format)
	if s.files != nil {
		if _, saveErr := s.files.Save(filename, data); saveErr != nil {
			s.logger.Warn("failed to save report file", zap.String("filename", filename), zap.Error(saveErr))
		}
	}

	return &ReportFile{Filename: filename, ContentType: contentType, Data: data}, nil
}
