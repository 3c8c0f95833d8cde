package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-labs/uni-enroll-api/internal/models"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "students.data.json")
}

func sampleRoster() []models.Student {
	enrolledAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []models.Student{
		{
			ID:           "000123",
			Name:         "Jane Doe",
			Email:        "jane.doe@university.com",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
			Enrollments: []models.Enrollment{
				models.NewEnrollment("101", 88, enrolledAt),
				models.NewEnrollment("201", 42, enrolledAt),
			},
		},
		{
			ID:           "000456",
			Name:         "John Roe",
			Email:        "john.roe@university.com",
			PasswordHash: "$2a$10$vutsrqponmlkjihgfedcba",
			Enrollments:  []models.Enrollment{},
		},
	}
}

func TestJSONFileStoreRoundTrip(t *testing.T) {
	path := tempStorePath(t)
	s := NewJSONFileStore(path, nil)
	roster := sampleRoster()

	require.NoError(t, s.SaveAll(context.Background(), roster))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, roster, loaded)
}

func TestJSONFileStoreMissingFileYieldsEmptyRoster(t *testing.T) {
	s := NewJSONFileStore(tempStorePath(t), nil)

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFileStoreMalformedFileYieldsEmptyRoster(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := NewJSONFileStore(path, nil)
	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFileStoreRederivesGradeFromMark(t *testing.T) {
	path := tempStorePath(t)
	// Stored grade disagrees with the mark; the mark wins on load.
	payload := `[{"student_id":"000789","name":"Ada","email":"ada@university.com",
        "password_hash":"h","enrollments":[
        {"subject_id":"101","mark":90,"grade":"Z","enrolled_at":"2026-03-01T09:00:00Z"}]}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	s := NewJSONFileStore(path, nil)
	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Len(t, loaded[0].Enrollments, 1)
	assert.Equal(t, models.GradeHD, loaded[0].Enrollments[0].Grade)
}

func TestJSONFileStoreSaveOverwritesWholeFile(t *testing.T) {
	path := tempStorePath(t)
	s := NewJSONFileStore(path, nil)

	require.NoError(t, s.SaveAll(context.Background(), sampleRoster()))
	require.NoError(t, s.SaveAll(context.Background(), []models.Student{}))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
