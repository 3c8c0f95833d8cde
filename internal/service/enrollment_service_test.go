package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/ident"
)

func newEnrollmentFixture(markValues []int, students ...models.Student) (*EnrollmentService, *Roster, *memStore) {
	roster, st := newTestRoster(students...)
	subjects := NewSubjectService(nil, NewValidator(), zap.NewNop())
	gen := ident.New(&seqSource{values: markValues})
	svc := NewEnrollmentService(roster, subjects, gen, NewValidator(), zap.NewNop())
	return svc, roster, st
}

func TestEnrollmentServiceEnroll(t *testing.T) {
	// Mark draws 25+Intn(76); 65 yields mark 90 and grade HD.
	svc, roster, _ := newEnrollmentFixture([]int{65}, testStudent("123456"))

	detail, err := svc.Enroll(context.Background(), "123456", models.EnrollRequest{SubjectID: "101"})
	require.NoError(t, err)

	assert.Equal(t, "101", detail.SubjectID)
	assert.Equal(t, "Introduction to Programming", detail.SubjectName)
	assert.Equal(t, 90, detail.Mark)
	assert.Equal(t, models.GradeHD, detail.Grade)

	student, ok := roster.Find("123456")
	require.True(t, ok)
	require.Len(t, student.Enrollments, 1)
	assert.Equal(t, "101", student.Enrollments[0].SubjectID)
}

func TestEnrollmentServiceEnrollUnknownSubject(t *testing.T) {
	svc, roster, _ := newEnrollmentFixture([]int{0}, testStudent("123456"))

	_, err := svc.Enroll(context.Background(), "123456", models.EnrollRequest{SubjectID: "999"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	student, _ := roster.Find("123456")
	assert.Empty(t, student.Enrollments)
}

func TestEnrollmentServiceEnrollInvalidSubjectID(t *testing.T) {
	svc, _, _ := newEnrollmentFixture([]int{0}, testStudent("123456"))

	for _, id := range []string{"", "10", "1011", "abc"} {
		_, err := svc.Enroll(context.Background(), "123456", models.EnrollRequest{SubjectID: id})
		require.Error(t, err, "subject id %q should be rejected", id)
		assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	}
}

func TestEnrollmentServiceEnrollDuplicate(t *testing.T) {
	svc, roster, _ := newEnrollmentFixture([]int{10}, testStudent("123456"))

	_, err := svc.Enroll(context.Background(), "123456", models.EnrollRequest{SubjectID: "102"})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), "123456", models.EnrollRequest{SubjectID: "102"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateEnrollment))

	student, _ := roster.Find("123456")
	assert.Len(t, student.Enrollments, 1)
}

func TestEnrollmentServiceEnrollLimit(t *testing.T) {
	now := time.Now().UTC()
	student := testStudent("123456",
		models.NewEnrollment("101", 60, now),
		models.NewEnrollment("102", 60, now),
		models.NewEnrollment("201", 60, now),
		models.NewEnrollment("301", 60, now),
	)
	svc, roster, st := newEnrollmentFixture([]int{0}, student)
	savesBefore := st.saves

	_, err := svc.Enroll(context.Background(), "123456", models.EnrollRequest{SubjectID: "401"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrEnrollmentLimit))

	got, _ := roster.Find("123456")
	assert.Len(t, got.Enrollments, models.MaxEnrollments)
	assert.Equal(t, savesBefore, st.saves)
}

func TestEnrollmentServiceEnrollRandom(t *testing.T) {
	// First draw picks index 3 of the ten eligible subjects, second sets the mark.
	svc, _, _ := newEnrollmentFixture([]int{3, 40}, testStudent("123456"))

	detail, err := svc.EnrollRandom(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "301", detail.SubjectID)
	assert.Equal(t, 65, detail.Mark)
	assert.Equal(t, models.GradeC, detail.Grade)
}

func TestEnrollmentServiceEnrollRandomSkipsEnrolled(t *testing.T) {
	now := time.Now().UTC()
	student := testStudent("123456",
		models.NewEnrollment("101", 60, now),
		models.NewEnrollment("102", 60, now),
		models.NewEnrollment("201", 60, now),
	)
	// Only seven subjects remain eligible; index 0 is Database Systems.
	svc, _, _ := newEnrollmentFixture([]int{0, 30}, student)

	detail, err := svc.EnrollRandom(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "301", detail.SubjectID)
}

func TestEnrollmentServiceEnrollRandomAtLimit(t *testing.T) {
	now := time.Now().UTC()
	student := testStudent("123456",
		models.NewEnrollment("101", 60, now),
		models.NewEnrollment("102", 60, now),
		models.NewEnrollment("201", 60, now),
		models.NewEnrollment("301", 60, now),
	)
	svc, _, _ := newEnrollmentFixture([]int{0}, student)

	_, err := svc.EnrollRandom(context.Background(), "123456")
	assert.True(t, appErrors.Is(err, appErrors.ErrEnrollmentLimit))
}

func TestEnrollmentServiceUnenroll(t *testing.T) {
	now := time.Now().UTC()
	student := testStudent("123456",
		models.NewEnrollment("101", 60, now),
		models.NewEnrollment("102", 60, now),
	)
	svc, roster, _ := newEnrollmentFixture([]int{0}, student)

	require.NoError(t, svc.Unenroll(context.Background(), "123456", "101"))

	got, _ := roster.Find("123456")
	require.Len(t, got.Enrollments, 1)
	assert.Equal(t, "102", got.Enrollments[0].SubjectID)
}

func TestEnrollmentServiceUnenrollNotEnrolled(t *testing.T) {
	svc, roster, st := newEnrollmentFixture([]int{0}, testStudent("123456"))
	savesBefore := st.saves

	err := svc.Unenroll(context.Background(), "123456", "101")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotEnrolled))

	got, _ := roster.Find("123456")
	assert.Empty(t, got.Enrollments)
	assert.Equal(t, savesBefore, st.saves)
}

func TestEnrollmentServiceList(t *testing.T) {
	now := time.Now().UTC()
	student := testStudent("123456",
		models.NewEnrollment("101", 90, now),
		models.NewEnrollment("141", 45, now),
	)
	svc, _, _ := newEnrollmentFixture([]int{0}, student)

	details, err := svc.List(context.Background(), "123456")
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Introduction to Programming", details[0].SubjectName)
	assert.Equal(t, models.GradeHD, details[0].Grade)
	assert.Equal(t, "English Composition", details[1].SubjectName)
	assert.Equal(t, models.GradeZ, details[1].Grade)

	_, err = svc.List(context.Background(), "654321")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
