package models

import "time"

// Enrollment captures a student's registration in a subject together with
// the generated mark and its derived grade. The grade is always recomputed
// from the mark; it is never authoritative on its own.
type Enrollment struct {
	SubjectID  string    `db:"subject_id" json:"subject_id"`
	Mark       int       `db:"mark" json:"mark"`
	Grade      Grade     `db:"grade" json:"grade"`
	EnrolledAt time.Time `db:"enrolled_at" json:"enrolled_at"`
}

// NewEnrollment builds an enrollment with the grade derived from the mark.
func NewEnrollment(subjectID string, mark int, at time.Time) Enrollment {
	return Enrollment{
		SubjectID:  subjectID,
		Mark:       mark,
		Grade:      GradeForMark(mark),
		EnrolledAt: at,
	}
}

// EnrollmentDetail enriches an enrollment with its subject name for display.
type EnrollmentDetail struct {
	Enrollment
	SubjectName string `json:"subject_name"`
}
