package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
)

// studentRecord is the on-disk shape of a student. It exists so the storage
// format can carry the password hash, which the API-facing model hides.
type studentRecord struct {
	StudentID    string             `json:"student_id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"password_hash"`
	Enrollments  []enrollmentRecord `json:"enrollments"`
}

type enrollmentRecord struct {
	SubjectID  string    `json:"subject_id"`
	Mark       int       `json:"mark"`
	Grade      string    `json:"grade"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// JSONFileStore keeps the whole roster in a single JSON file, rewritten on
// every save. A crash mid-write can corrupt the file; recovery is out of
// scope and a corrupt file degrades to an empty roster on the next load.
type JSONFileStore struct {
	path   string
	logger *zap.Logger
}

// NewJSONFileStore returns a store backed by the given file path.
func NewJSONFileStore(path string, logger *zap.Logger) *JSONFileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONFileStore{path: path, logger: logger}
}

// Load reads the roster file. A missing file yields an empty roster, and so
// does malformed content: a broken data file must not crash the process.
func (s *JSONFileStore) Load(ctx context.Context) ([]models.Student, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Student{}, nil
		}
		return nil, fmt.Errorf("read roster file %s: %w", s.path, err)
	}

	var records []studentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("roster file is malformed, starting with empty roster",
			zap.String("path", s.path), zap.Error(err))
		return []models.Student{}, nil
	}

	students := make([]models.Student, 0, len(records))
	for _, rec := range records {
		student := models.Student{
			ID:           rec.StudentID,
			Name:         rec.Name,
			Email:        rec.Email,
			PasswordHash: rec.PasswordHash,
			Enrollments:  make([]models.Enrollment, 0, len(rec.Enrollments)),
		}
		for _, e := range rec.Enrollments {
			// The grade is derived state; rederive rather than trust the file.
			student.Enrollments = append(student.Enrollments,
				models.NewEnrollment(e.SubjectID, e.Mark, e.EnrolledAt))
		}
		students = append(students, student)
	}

	return students, nil
}

// SaveAll serializes the full roster, overwriting the file entirely.
func (s *JSONFileStore) SaveAll(ctx context.Context, students []models.Student) error {
	records := make([]studentRecord, 0, len(students))
	for _, student := range students {
		rec := studentRecord{
			StudentID:    student.ID,
			Name:         student.Name,
			Email:        student.Email,
			PasswordHash: student.PasswordHash,
			Enrollments:  make([]enrollmentRecord, 0, len(student.Enrollments)),
		}
		for _, e := range student.Enrollments {
			rec.Enrollments = append(rec.Enrollments, enrollmentRecord{
				SubjectID:  e.SubjectID,
				Mark:       e.Mark,
				Grade:      string(e.Grade),
				EnrolledAt: e.EnrolledAt,
			})
		}
		records = append(records, rec)
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write roster file %s: %w", s.path, err)
	}
	return nil
}
