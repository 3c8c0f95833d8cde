package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	"github.com/campus-labs/uni-enroll-api/internal/store"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
)

// Roster holds the in-memory student list and writes it through to the
// store after every mutation. The list keeps insertion order. The mutex
// exists because the HTTP server handles requests concurrently; the system
// model itself is single-user.
type Roster struct {
	mu       sync.RWMutex
	students []models.Student
	store    store.Store
	logger   *zap.Logger
}

// NewRoster loads the roster from the store. Load failures degrade to an
// empty roster: a broken or unreadable data file must not stop the process.
func NewRoster(ctx context.Context, st store.Store, logger *zap.Logger) *Roster {
	if logger == nil {
		logger = zap.NewNop()
	}
	students, err := st.Load(ctx)
	if err != nil {
		logger.Warn("failed to load roster, starting empty", zap.Error(err))
		students = []models.Student{}
	}
	return &Roster{students: students, store: st, logger: logger}
}

// Students returns a copy of the roster in insertion order.
func (r *Roster) Students() []models.Student {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copyStudents(r.students)
}

// Len returns the number of registered students.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.students)
}

// Find returns the student with the given ID.
func (r *Roster) Find(id string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.students {
		if r.students[i].ID == id {
			return copyStudent(r.students[i]), true
		}
	}
	return models.Student{}, false
}

// FindByEmail returns the student holding the given email.
func (r *Roster) FindByEmail(email string) (models.Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.students {
		if r.students[i].Email == email {
			return copyStudent(r.students[i]), true
		}
	}
	return models.Student{}, false
}

// EmailExists reports whether any student holds the email.
func (r *Roster) EmailExists(email string) bool {
	_, ok := r.FindByEmail(email)
	return ok
}

// IDs returns the set of student IDs currently in use.
func (r *Roster) IDs() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make(map[string]struct{}, len(r.students))
	for i := range r.students {
		ids[r.students[i].ID] = struct{}{}
	}
	return ids
}

// Add appends a student and persists the roster.
func (r *Roster) Add(ctx context.Context, student models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = append(r.students, student)
	return r.persist(ctx)
}

// Mutate applies fn to a copy of the identified student. Only when fn
// succeeds is the copy written back and the roster persisted, so a failed
// operation leaves the student untouched.
func (r *Roster) Mutate(ctx context.Context, id string, fn func(*models.Student) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.students {
		if r.students[i].ID != id {
			continue
		}
		candidate := copyStudent(r.students[i])
		if err := fn(&candidate); err != nil {
			return err
		}
		r.students[i] = candidate
		return r.persist(ctx)
	}
	return appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// Remove deletes the student with the given ID and persists the roster.
func (r *Roster) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.students {
		if r.students[i].ID == id {
			r.students = append(r.students[:i], r.students[i+1:]...)
			return r.persist(ctx)
		}
	}
	return appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// Clear empties the roster and persists.
func (r *Roster) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students = []models.Student{}
	return r.persist(ctx)
}

func (r *Roster) persist(ctx context.Context) error {
	if err := r.store.SaveAll(ctx, r.students); err != nil {
		r.logger.Error("failed to persist roster", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}
	return nil
}

func copyStudent(s models.Student) models.Student {
	out := s
	out.Enrollments = make([]models.Enrollment, len(s.Enrollments))
	copy(out.Enrollments, s.Enrollments)
	return out
}

func copyStudents(students []models.Student) []models.Student {
	out := make([]models.Student, 0, len(students))
	for _, s := range students {
		out = append(out, copyStudent(s))
	}
	return out
}
