package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campus-labs/uni-enroll-api/internal/models"
)

// PostgresStore persists the roster in PostgreSQL while keeping the same
// wholesale replace semantics as the flat file: every save rewrites the
// roster inside one transaction. The position column preserves insertion
// order across loads.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the roster tables when they do not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS students (
			id            VARCHAR(6) PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			position      INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS enrollments (
			student_id  VARCHAR(6) NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			subject_id  VARCHAR(3) NOT NULL,
			mark        INT NOT NULL,
			grade       VARCHAR(2) NOT NULL,
			enrolled_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (student_id, subject_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate roster schema: %w", err)
		}
	}
	return nil
}

type studentRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Position     int    `db:"position"`
}

// Load reads the full roster in insertion order.
func (s *PostgresStore) Load(ctx context.Context) ([]models.Student, error) {
	var rows []studentRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, name, email, password_hash, position FROM students ORDER BY position`); err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}

	students := make([]models.Student, 0, len(rows))
	index := make(map[string]int, len(rows))
	for i, row := range rows {
		students = append(students, models.Student{
			ID:           row.ID,
			Name:         row.Name,
			Email:        row.Email,
			PasswordHash: row.PasswordHash,
			Enrollments:  []models.Enrollment{},
		})
		index[row.ID] = i
	}

	var enrollments []models.Enrollment
	var owners []string
	rows2, err := s.db.QueryxContext(ctx,
		`SELECT student_id, subject_id, mark, enrolled_at FROM enrollments ORDER BY enrolled_at`)
	if err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	defer rows2.Close() //nolint:errcheck
	for rows2.Next() {
		var studentID, subjectID string
		var mark int
		var enrolledAt time.Time
		if err := rows2.Scan(&studentID, &subjectID, &mark, &enrolledAt); err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		enrollments = append(enrollments, models.NewEnrollment(subjectID, mark, enrolledAt))
		owners = append(owners, studentID)
	}
	if err := rows2.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}

	for i, e := range enrollments {
		if pos, ok := index[owners[i]]; ok {
			students[pos].Enrollments = append(students[pos].Enrollments, e)
		}
	}

	return students, nil
}

// SaveAll replaces the entire roster in one transaction.
func (s *PostgresStore) SaveAll(ctx context.Context, students []models.Student) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM enrollments`); err != nil {
		return fmt.Errorf("clear enrollments: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return fmt.Errorf("clear students: %w", err)
	}

	for i, student := range students {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (id, name, email, password_hash, position) VALUES ($1, $2, $3, $4, $5)`,
			student.ID, student.Name, student.Email, student.PasswordHash, i); err != nil {
			return fmt.Errorf("insert student %s: %w", student.ID, err)
		}
		for _, e := range student.Enrollments {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO enrollments (student_id, subject_id, mark, grade, enrolled_at) VALUES ($1, $2, $3, $4, $5)`,
				student.ID, e.SubjectID, e.Mark, string(e.Grade), e.EnrolledAt); err != nil {
				return fmt.Errorf("insert enrollment %s/%s: %w", student.ID, e.SubjectID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster save: %w", err)
	}
	return nil
}
