package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	"github.com/campus-labs/uni-enroll-api/internal/service"
	"github.com/campus-labs/uni-enroll-api/pkg/config"
	"github.com/campus-labs/uni-enroll-api/pkg/response"
)

type stubStore struct {
	students []models.Student
}

func (s *stubStore) Load(ctx context.Context) ([]models.Student, error) {
	return s.students, nil
}

func (s *stubStore) SaveAll(ctx context.Context, students []models.Student) error {
	s.students = students
	return nil
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logr := zap.NewNop()
	validate := service.NewValidator()
	roster := service.NewRoster(context.Background(), &stubStore{}, logr)
	subjects := service.NewSubjectService(nil, validate, logr)
	students := service.NewStudentService(roster, nil, validate, logr)
	enrollments := service.NewEnrollmentService(roster, subjects, nil, validate, logr)
	admin := service.NewAdminService(roster, logr)
	metrics := service.NewMetricsService()
	cache := service.NewCacheService(nil, metrics, 0, logr, false)
	reports := service.NewReportService(admin, nil, cache, 0, logr)
	auth := service.NewAuthService(roster, []config.AdminAccount{
		{ID: "admin001", Password: "Admin123", Name: "Dr. Sarah Johnson"},
	}, service.NewSessionManager(), validate, logr, service.AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
	})

	r := gin.New()
	RegisterRoutes(r, "/api/v1", Handlers{
		Auth:        NewAuthHandler(auth),
		Students:    NewStudentHandler(students),
		Enrollments: NewEnrollmentHandler(enrollments),
		Subjects:    NewSubjectHandler(subjects),
		Admin:       NewAdminHandler(admin),
		Reports:     NewReportHandler(reports),
		Metrics:     NewMetricsHandler(metrics),
	}, auth)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func registerAndLogin(t *testing.T, r *gin.Engine) (models.Student, string) {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/v1/students", "", models.RegisterRequest{
		Name:     "Alice Zhang",
		Email:    "alice@university.com",
		Password: "Abcde123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var student models.Student
	decodeData(t, w, &student)

	w = doJSON(r, http.MethodPost, "/api/v1/auth/login", "", models.StudentLoginRequest{
		Email:    "alice@university.com",
		Password: "Abcde123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var session models.Session
	decodeData(t, w, &session)

	return student, session.Token
}

func adminLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/v1/auth/admin/login", "", models.AdminLoginRequest{
		AdminID:  "admin001",
		Password: "Admin123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var session models.Session
	decodeData(t, w, &session)
	return session.Token
}

func TestRouterRegisterAndLogin(t *testing.T) {
	r := newTestServer(t)

	student, token := registerAndLogin(t, r)
	assert.Len(t, student.ID, 6)
	assert.NotEmpty(t, token)

	// Registering the same email again conflicts.
	w := doJSON(r, http.MethodPost, "/api/v1/students", "", models.RegisterRequest{
		Name:     "Alice Clone",
		Email:    "alice@university.com",
		Password: "Abcde123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouterEnrollmentFlow(t *testing.T) {
	r := newTestServer(t)
	student, token := registerAndLogin(t, r)

	base := "/api/v1/students/" + student.ID + "/enrollments"

	w := doJSON(r, http.MethodPost, base, token, models.EnrollRequest{SubjectID: "101"})
	require.Equal(t, http.StatusCreated, w.Code)
	var detail models.EnrollmentDetail
	decodeData(t, w, &detail)
	assert.Equal(t, "101", detail.SubjectID)
	assert.Equal(t, "Introduction to Programming", detail.SubjectName)
	assert.GreaterOrEqual(t, detail.Mark, 25)
	assert.LessOrEqual(t, detail.Mark, 100)

	// Enrolling twice in the same subject conflicts.
	w = doJSON(r, http.MethodPost, base, token, models.EnrollRequest{SubjectID: "101"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var details []models.EnrollmentDetail
	decodeData(t, w, &details)
	assert.Len(t, details, 1)

	w = doJSON(r, http.MethodDelete, base+"/101", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodDelete, base+"/101", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRouterEnrollmentLimit(t *testing.T) {
	r := newTestServer(t)
	student, token := registerAndLogin(t, r)

	base := "/api/v1/students/" + student.ID + "/enrollments"
	for _, id := range []string{"101", "102", "201", "301"} {
		w := doJSON(r, http.MethodPost, base, token, models.EnrollRequest{SubjectID: id})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(r, http.MethodPost, base, token, models.EnrollRequest{SubjectID: "401"})
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ENROLLMENT_LIMIT", envelope.Error.Code)
}

func TestRouterRBAC(t *testing.T) {
	r := newTestServer(t)
	student, token := registerAndLogin(t, r)

	// A student cannot reach the admin surface.
	w := doJSON(r, http.MethodGet, "/api/v1/admin/students", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin login displaces the student session; the old token is rejected.
	adminToken := adminLogin(t, r)
	w = doJSON(r, http.MethodGet, "/api/v1/students/"+student.ID, token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/admin/students", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var infos []models.StudentInfo
	decodeData(t, w, &infos)
	assert.Len(t, infos, 1)
}

func TestRouterAdminViewsAndReports(t *testing.T) {
	r := newTestServer(t)
	student, token := registerAndLogin(t, r)

	w := doJSON(r, http.MethodPost, "/api/v1/students/"+student.ID+"/enrollments", token, models.EnrollRequest{SubjectID: "101"})
	require.Equal(t, http.StatusCreated, w.Code)

	adminToken := adminLogin(t, r)

	w = doJSON(r, http.MethodGet, "/api/v1/admin/grades", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var groups map[models.Grade][]models.GradeGroupRow
	decodeData(t, w, &groups)
	assert.Len(t, groups, len(models.AllGrades))

	w = doJSON(r, http.MethodGet, "/api/v1/admin/reports/grades?format=csv", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "grade,student_id,student_name,subject_id,mark")

	w = doJSON(r, http.MethodGet, "/api/v1/admin/reports/students?format=pdf", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))

	w = doJSON(r, http.MethodGet, "/api/v1/admin/reports/grades?format=xlsx", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterLogoutInvalidatesToken(t *testing.T) {
	r := newTestServer(t)
	student, token := registerAndLogin(t, r)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/students/"+student.ID, token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouterUnauthenticated(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(r, http.MethodGet, "/api/v1/admin/students", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/subjects", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
