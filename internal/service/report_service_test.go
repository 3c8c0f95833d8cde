package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
)

func newReportFixture() *ReportService {
	admin, _, _ := newAdminFixture()
	cache := NewCacheService(nil, nil, 0, zap.NewNop(), false)
	return NewReportService(admin, nil, cache, 0, zap.NewNop())
}

func TestReportServiceGradeReportCSV(t *testing.T) {
	svc := newReportFixture()

	report, err := svc.GradeReport(context.Background(), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", report.ContentType)
	assert.True(t, strings.HasSuffix(report.Filename, ".csv"))

	body := string(report.Data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 4) // header plus one row per enrollment
	assert.Equal(t, "grade,student_id,student_name,subject_id,mark", lines[0])
	assert.Contains(t, body, "HD,111111,Alice Zhang,101,90")
	assert.Contains(t, body, "Z,111111,Alice Zhang,102,40")
	assert.Contains(t, body, "P,222222,Bob Smith,201,50")

	// Rows come out in fixed grade order: Z before P before HD.
	assert.Less(t, strings.Index(body, "Z,111111"), strings.Index(body, "P,222222"))
	assert.Less(t, strings.Index(body, "P,222222"), strings.Index(body, "HD,111111"))
}

func TestReportServiceStudentReportCSV(t *testing.T) {
	svc := newReportFixture()

	report, err := svc.StudentReport(context.Background(), FormatCSV)
	require.NoError(t, err)

	body := string(report.Data)
	assert.Contains(t, body, "student_id,name,email,enrollment_count")
	assert.Contains(t, body, "111111,Alice Zhang,alice@university.com,2")
	assert.Contains(t, body, "222222,Bob Smith,bob@university.com,1")
}

func TestReportServiceStudentReportPDF(t *testing.T) {
	svc := newReportFixture()

	report, err := svc.StudentReport(context.Background(), FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, strings.HasSuffix(report.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(report.Data), "%PDF"))
}

func TestReportServiceUnsupportedFormat(t *testing.T) {
	svc := newReportFixture()

	_, err := svc.GradeReport(context.Background(), "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
