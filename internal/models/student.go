package models

// MaxEnrollments bounds the number of concurrent enrollments per student.
const MaxEnrollments = 4

// Student represents a registered student and their enrollments.
type Student struct {
	ID           string       `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	Enrollments  []Enrollment `json:"enrollments"`
}

// EnrolledIn reports whether the student holds an enrollment in the subject.
func (s *Student) EnrolledIn(subjectID string) bool {
	for _, e := range s.Enrollments {
		if e.SubjectID == subjectID {
			return true
		}
	}
	return false
}

// StudentInfo is the roster view of a student exposed to admins.
type StudentInfo struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	EnrollmentCount int    `json:"enrollment_count"`
}

// Info returns the summary view of the student.
func (s *Student) Info() StudentInfo {
	return StudentInfo{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		EnrollmentCount: len(s.Enrollments),
	}
}

// GradeGroupRow is one enrollment bucketed under its grade in admin views.
// A student enrolled in differently graded subjects appears once per grade.
type GradeGroupRow struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	SubjectID   string `json:"subject_id"`
	Mark        int    `json:"mark"`
	Grade       Grade  `json:"grade"`
}

// PassFailStatus labels an enrollment as passing or failing.
type PassFailStatus string

const (
	StatusPass PassFailStatus = "PASS"
	StatusFail PassFailStatus = "FAIL"
)

// PassFailRow is one enrollment categorized by the pass mark.
type PassFailRow struct {
	GradeGroupRow
	Status PassFailStatus `json:"status"`
}
