package service

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/ident"
)

// SubjectService owns the subject catalog. The catalog is reconstructed from
// the fixed table at startup; admin-created subjects live for the run.
type SubjectService struct {
	mu        sync.RWMutex
	subjects  []models.Subject
	gen       *ident.Generator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService seeds the default catalog.
func NewSubjectService(gen *ident.Generator, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if gen == nil {
		gen = ident.New(nil)
	}
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	subjects := make([]models.Subject, len(models.DefaultSubjects))
	copy(subjects, models.DefaultSubjects)
	return &SubjectService{subjects: subjects, gen: gen, validator: validate, logger: logger}
}

// List returns the catalog in seed order.
func (s *SubjectService) List(ctx context.Context) []models.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Subject, len(s.subjects))
	copy(out, s.subjects)
	return out
}

// Get returns the subject with the given ID.
func (s *SubjectService) Get(ctx context.Context, id string) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.subjects {
		if s.subjects[i].ID == id {
			subject := s.subjects[i]
			return &subject, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
}

// Create adds a subject with a freshly generated 3-digit ID.
func (s *SubjectService) Create(ctx context.Context, req models.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.subjects))
	for i := range s.subjects {
		existing[s.subjects[i].ID] = struct{}{}
	}
	id, err := s.gen.SubjectID(existing)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate subject id")
	}

	credits := req.Credits
	if credits == 0 {
		credits = 3
	}
	subject := models.Subject{ID: id, Name: req.Name, Description: req.Description, Credits: credits}
	s.subjects = append(s.subjects, subject)
	s.logger.Info("subject created", zap.String("subject_id", id), zap.String("name", req.Name))
	return &subject, nil
}
