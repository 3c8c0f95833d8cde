package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	"github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/ident"
)

// StudentService handles registration and student self-service operations.
type StudentService struct {
	roster    *Roster
	gen       *ident.Generator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(roster *Roster, gen *ident.Generator, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if gen == nil {
		gen = ident.New(nil)
	}
	return &StudentService{roster: roster, gen: gen, validator: validate, logger: logger}
}

// Register creates a new student with a fresh 6-digit ID and persists the
// roster. Email format, password format and email uniqueness are enforced.
func (s *StudentService) Register(ctx context.Context, req models.RegisterRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid registration payload")
	}

	if s.roster.EmailExists(req.Email) {
		return nil, errors.Clone(errors.ErrDuplicateEmail, "")
	}

	id, err := s.gen.StudentID(s.roster.IDs())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to allocate student id")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to hash password")
	}

	student := models.Student{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Enrollments:  []models.Enrollment{},
	}
	if err := s.roster.Add(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student registered", zap.String("student_id", id), zap.String("email", req.Email))
	return &student, nil
}

// Get returns the student with the given ID.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, ok := s.roster.Find(id)
	if !ok {
		return nil, errors.Clone(errors.ErrNotFound, "student not found")
	}
	return &student, nil
}

// ChangePassword replaces the student's password after format validation.
func (s *StudentService) ChangePassword(ctx context.Context, studentID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return errors.Wrap(err, errors.ErrValidation.Code, errors.ErrValidation.Status, "invalid password format")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal.Code, errors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.roster.Mutate(ctx, studentID, func(student *models.Student) error {
		student.PasswordHash = string(hash)
		return nil
	}); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("student_id", studentID))
	return nil
}
