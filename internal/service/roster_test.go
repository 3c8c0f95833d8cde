package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
)

// memStore is an in-memory store.Store used across the service tests.
type memStore struct {
	students []models.Student
	loadErr  error
	saveErr  error
	saves    int
}

func (m *memStore) Load(ctx context.Context) ([]models.Student, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.students, nil
}

func (m *memStore) SaveAll(ctx context.Context, students []models.Student) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.students = students
	return nil
}

// seqSource feeds the identifier generator a fixed sequence of values.
type seqSource struct {
	values []int
	i      int
}

func (s *seqSource) Intn(n int) int {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v % n
}

func newTestRoster(students ...models.Student) (*Roster, *memStore) {
	st := &memStore{students: students}
	return NewRoster(context.Background(), st, zap.NewNop()), st
}

func testStudent(id string, enrollments ...models.Enrollment) models.Student {
	return models.Student{
		ID:           id,
		Name:         "Alice Zhang",
		Email:        "alice@university.com",
		PasswordHash: "$2a$10$placeholderplaceholderplace",
		Enrollments:  enrollments,
	}
}

func TestRosterLoadFailureStartsEmpty(t *testing.T) {
	st := &memStore{loadErr: errors.New("disk gone")}
	roster := NewRoster(context.Background(), st, zap.NewNop())
	assert.Equal(t, 0, roster.Len())
}

func TestRosterMutateUnknownStudent(t *testing.T) {
	roster, _ := newTestRoster()
	err := roster.Mutate(context.Background(), "999999", func(s *models.Student) error { return nil })
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestRosterMutateFailureLeavesStudentUnchanged(t *testing.T) {
	enrollment := models.NewEnrollment("101", 70, time.Now().UTC())
	roster, st := newTestRoster(testStudent("123456", enrollment))
	savesBefore := st.saves

	err := roster.Mutate(context.Background(), "123456", func(s *models.Student) error {
		s.Enrollments = nil
		return errors.New("rejected")
	})
	require.Error(t, err)

	got, ok := roster.Find("123456")
	require.True(t, ok)
	assert.Len(t, got.Enrollments, 1)
	assert.Equal(t, savesBefore, st.saves)
}

func TestRosterPersistFailure(t *testing.T) {
	roster, st := newTestRoster()
	st.saveErr = errors.New("write refused")

	err := roster.Add(context.Background(), testStudent("123456"))
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrPersistence))
}

func TestRosterRemove(t *testing.T) {
	roster, st := newTestRoster(testStudent("111111"), testStudent("222222"))

	require.NoError(t, roster.Remove(context.Background(), "111111"))
	assert.Equal(t, 1, roster.Len())
	assert.Len(t, st.students, 1)

	err := roster.Remove(context.Background(), "111111")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestRosterClear(t *testing.T) {
	roster, st := newTestRoster(testStudent("111111"), testStudent("222222"))

	require.NoError(t, roster.Clear(context.Background()))
	assert.Equal(t, 0, roster.Len())
	assert.Empty(t, st.students)
}
