package models

import "time"

// ExamDate is a scheduled admission-exam slot with a seat capacity. The
// faculty linkage is many-to-many: one slot may serve several faculties.
type ExamDate struct {
	ID             int64     `json:"id"`
	Date           time.Time `json:"date"`
	AvailableSpots int       `json:"available_spots"`
	IsActive       bool      `json:"is_active"`
	FacultyIDs     []int64   `json:"faculty_ids,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LinkedTo reports whether the exam date is linked to the given faculty.
func (e ExamDate) LinkedTo(facultyID int64) bool {
	for _, id := range e.FacultyIDs {
		if id == facultyID {
			return true
		}
	}
	return false
}
