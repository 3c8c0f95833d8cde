package models

// Subject represents a university subject offered for enrollment.
type Subject struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Credits     int    `db:"credits" json:"credits"`
}

// DefaultSubjects is the fixed catalog seeded at first run.
var DefaultSubjects = []Subject{
	{ID: "101", Name: "Introduction to Programming", Credits: 3},
	{ID: "102", Name: "Data Structures", Credits: 3},
	{ID: "201", Name: "Software Engineering", Credits: 3},
	{ID: "301", Name: "Database Systems", Credits: 3},
	{ID: "401", Name: "Machine Learning", Credits: 3},
	{ID: "111", Name: "Calculus I", Credits: 3},
	{ID: "112", Name: "Calculus II", Credits: 3},
	{ID: "121", Name: "Physics I", Credits: 3},
	{ID: "131", Name: "Chemistry I", Credits: 3},
	{ID: "141", Name: "English Composition", Credits: 3},
}
