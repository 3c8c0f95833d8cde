package models

// Grade is a letter grade derived from a numeric mark.
type Grade string

// Letter grades in ascending order of achievement.
const (
	GradeZ  Grade = "Z"
	GradeP  Grade = "P"
	GradeC  Grade = "C"
	GradeD  Grade = "D"
	GradeHD Grade = "HD"
)

// AllGrades lists the letter grades from lowest to highest.
var AllGrades = []Grade{GradeZ, GradeP, GradeC, GradeD, GradeHD}

// PassMark is the minimum mark counted as a pass.
const PassMark = 50

// GradeForMark maps a mark to its letter grade. Marks outside [0,100] are
// clamped to the nearest boundary; generated marks stay within [25,100] so
// clamping only matters for hand-fed input.
func GradeForMark(mark int) Grade {
	if mark < 0 {
		mark = 0
	}
	if mark > 100 {
		mark = 100
	}

	switch {
	case mark < 50:
		return GradeZ
	case mark < 65:
		return GradeP
	case mark < 75:
		return GradeC
	case mark < 85:
		return GradeD
	default:
		return GradeHD
	}
}
