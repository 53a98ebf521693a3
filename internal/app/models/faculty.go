package models

import (
	"strings"
	"time"
)

// Faculty represents an admissions department/major belonging to one program.
type Faculty struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Program   Program    `json:"program"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExamDates []ExamDate `json:"exam_dates"`
}

// FacultyGroup is one program partition of the faculty set, as served to the
// intake form.
type FacultyGroup struct {
	Program   string    `json:"program"`
	Faculties []Faculty `json:"faculty_list"`
}

const prefixSeparator = " - "

var knownPrefixes = []string{
	bachelorLabel + prefixSeparator,
	masterLabel + prefixSeparator,
}

// FormatFacultyName prepends the program's display prefix to a faculty name.
// Names that already carry a recognized prefix (either program) are returned
// unchanged, so re-applying the operation never duplicates the prefix.
func FormatFacultyName(name string, program Program) string {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(name, p) {
			return name
		}
	}
	return program.Label() + prefixSeparator + name
}

// StripProgramPrefix removes a recognized program prefix from a faculty name.
// It is the exact inverse of FormatFacultyName for any name it produced.
func StripProgramPrefix(name string) string {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(name, p) {
			return strings.TrimPrefix(name, p)
		}
	}
	return name
}
