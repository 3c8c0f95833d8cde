// Package store persists the student roster. Every backend implements the
// same wholesale contract: load the full roster, save the full roster. There
// is no incremental update path; the single-process model makes the rewrite
// cheap and race-free.
package store

import (
	"context"

	"github.com/campus-labs/uni-enroll-api/internal/models"
)

// Store loads and saves the complete student roster.
type Store interface {
	Load(ctx context.Context) ([]models.Student, error)
	SaveAll(ctx context.Context, students []models.Student) error
}
