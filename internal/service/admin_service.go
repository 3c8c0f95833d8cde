package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
)

// AdminService exposes the privileged roster views and mutations.
type AdminService struct {
	roster *Roster
	logger *zap.Logger
}

// NewAdminService constructs an AdminService.
func NewAdminService(roster *Roster, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{roster: roster, logger: logger}
}

// ListStudents returns all students in insertion order.
func (s *AdminService) ListStudents(ctx context.Context) []models.StudentInfo {
	students := s.roster.Students()
	infos := make([]models.StudentInfo, 0, len(students))
	for i := range students {
		infos = append(infos, students[i].Info())
	}
	return infos
}

// GroupByGrade buckets enrollments under their letter grade. Grouping is
// per enrollment: a student with differently graded enrollments appears in
// several groups. All grade buckets are present even when empty.
func (s *AdminService) GroupByGrade(ctx context.Context) map[models.Grade][]models.GradeGroupRow {
	groups := make(map[models.Grade][]models.GradeGroupRow, len(models.AllGrades))
	for _, grade := range models.AllGrades {
		groups[grade] = []models.GradeGroupRow{}
	}

	for _, student := range s.roster.Students() {
		for _, e := range student.Enrollments {
			groups[e.Grade] = append(groups[e.Grade], models.GradeGroupRow{
				StudentID:   student.ID,
				StudentName: student.Name,
				SubjectID:   e.SubjectID,
				Mark:        e.Mark,
				Grade:       e.Grade,
			})
		}
	}
	return groups
}

// CategorizePassFail splits enrollments by the pass mark. Categorization is
// per enrollment, mirroring GroupByGrade.
func (s *AdminService) CategorizePassFail(ctx context.Context) map[models.PassFailStatus][]models.PassFailRow {
	result := map[models.PassFailStatus][]models.PassFailRow{
		models.StatusPass: {},
		models.StatusFail: {},
	}

	for _, student := range s.roster.Students() {
		for _, e := range student.Enrollments {
			status := models.StatusFail
			if e.Mark >= models.PassMark {
				status = models.StatusPass
			}
			result[status] = append(result[status], models.PassFailRow{
				GradeGroupRow: models.GradeGroupRow{
					StudentID:   student.ID,
					StudentName: student.Name,
					SubjectID:   e.SubjectID,
					Mark:        e.Mark,
					Grade:       e.Grade,
				},
				Status: status,
			})
		}
	}
	return result
}

// RemoveStudent deletes a student record and persists the roster.
func (s *AdminService) RemoveStudent(ctx context.Context, id string) error {
	if err := s.roster.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.Info("student removed", zap.String("student_id", id))
	return nil
}

// ClearAll empties the roster and persists.
func (s *AdminService) ClearAll(ctx context.Context) error {
	if err := s.roster.Clear(ctx); err != nil {
		return err
	}
	s.logger.Warn("roster cleared")
	return nil
}
