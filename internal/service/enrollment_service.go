package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/ident"
)

// EnrollmentService manages a student's subject enrollments. Marks are drawn
// from the injected generator at enrollment time and the grade derives from
// the mark.
type EnrollmentService struct {
	roster    *Roster
	subjects  *SubjectService
	gen       *ident.Generator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(roster *Roster, subjects *SubjectService, gen *ident.Generator, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if gen == nil {
		gen = ident.New(nil)
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{roster: roster, subjects: subjects, gen: gen, validator: validate, logger: logger}
}

// Enroll registers the student in the subject. At most four concurrent
// enrollments are allowed and a failed attempt leaves the set unchanged.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID string, req models.EnrollRequest) (*models.EnrollmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	subject, err := s.subjects.Get(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	var created models.Enrollment
	if err := s.roster.Mutate(ctx, studentID, func(student *models.Student) error {
		if len(student.Enrollments) >= models.MaxEnrollments {
			return appErrors.Clone(appErrors.ErrEnrollmentLimit, "")
		}
		if student.EnrolledIn(subject.ID) {
			return appErrors.Clone(appErrors.ErrDuplicateEnrollment, "")
		}
		created = models.NewEnrollment(subject.ID, s.gen.Mark(), time.Now().UTC())
		student.Enrollments = append(student.Enrollments, created)
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("student enrolled",
		zap.String("student_id", studentID),
		zap.String("subject_id", subject.ID),
		zap.Int("mark", created.Mark),
		zap.String("grade", string(created.Grade)))
	return &models.EnrollmentDetail{Enrollment: created, SubjectName: subject.Name}, nil
}

// EnrollRandom enrolls the student in a randomly chosen eligible subject.
func (s *EnrollmentService) EnrollRandom(ctx context.Context, studentID string) (*models.EnrollmentDetail, error) {
	student, ok := s.roster.Find(studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if len(student.Enrollments) >= models.MaxEnrollments {
		return nil, appErrors.Clone(appErrors.ErrEnrollmentLimit, "")
	}

	var eligible []models.Subject
	for _, subject := range s.subjects.List(ctx) {
		if !student.EnrolledIn(subject.ID) {
			eligible = append(eligible, subject)
		}
	}
	if len(eligible) == 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "no eligible subjects available")
	}

	pick := eligible[s.gen.Pick(len(eligible))]
	return s.Enroll(ctx, studentID, models.EnrollRequest{SubjectID: pick.ID})
}

// Unenroll removes the student's enrollment in the subject.
func (s *EnrollmentService) Unenroll(ctx context.Context, studentID, subjectID string) error {
	if err := s.roster.Mutate(ctx, studentID, func(student *models.Student) error {
		for i := range student.Enrollments {
			if student.Enrollments[i].SubjectID == subjectID {
				student.Enrollments = append(student.Enrollments[:i], student.Enrollments[i+1:]...)
				return nil
			}
		}
		return appErrors.Clone(appErrors.ErrNotEnrolled, "")
	}); err != nil {
		return err
	}

	s.logger.Info("student unenrolled",
		zap.String("student_id", studentID), zap.String("subject_id", subjectID))
	return nil
}

// List returns the student's enrollments with subject names attached.
func (s *EnrollmentService) List(ctx context.Context, studentID string) ([]models.EnrollmentDetail, error) {
	student, ok := s.roster.Find(studentID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	details := make([]models.EnrollmentDetail, 0, len(student.Enrollments))
	for _, e := range student.Enrollments {
		name := ""
		if subject, err := s.subjects.Get(ctx, e.SubjectID); err == nil {
			name = subject.Name
		}
		details = append(details, models.EnrollmentDetail{Enrollment: e, SubjectName: name})
	}
	return details, nil
}
