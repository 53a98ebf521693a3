package selection

import (
	"sort"
	"strings"

	"github.com/lilnurik/uniadmit/internal/app/models"
)

// FacultiesForProgram returns the faculty list of the first group whose
// program label matches the given program, the way the intake form matches
// the grouped response: case-insensitive containment of the program value in
// the group label. Returns nil when no group matches.
func FacultiesForProgram(program models.Program, groups []models.FacultyGroup) []models.Faculty {
	needle := strings.ToLower(string(program))
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Program), needle) {
			return g.Faculties
		}
	}
	return nil
}

// ExamDatesForFaculty filters a ledger snapshot to the exam dates linked to
// the given faculty, ordered ascending by date. Absence of linkage yields an
// empty slice, not an error.
func ExamDatesForFaculty(facultyID int64, dates []models.ExamDate) []models.ExamDate {
	linked := make([]models.ExamDate, 0)
	for _, d := range dates {
		if d.LinkedTo(facultyID) {
			linked = append(linked, d)
		}
	}
	sort.Slice(linked, func(i, j int) bool {
		return linked[i].Date.Before(linked[j].Date)
	})
	return linked
}

// RemainingSpots returns the last-fetched seat count of an exam date. The
// value is advisory: the ledger guards non-negativity at write time, and no
// atomic check-and-decrement happens on booking.
func RemainingSpots(d models.ExamDate) int {
	return d.AvailableSpots
}

// AssignmentValid reports whether the exam date may be assigned together
// with the faculty, i.e. it appears among the faculty's linked exam dates.
func AssignmentValid(facultyID, examDateID int64, dates []models.ExamDate) bool {
	for _, d := range ExamDatesForFaculty(facultyID, dates) {
		if d.ID == examDateID {
			return true
		}
	}
	return false
}
