package selection_test

import (
	"testing"
	"time"

	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/app/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func examDate(id int64, date time.Time, spots int, facultyIDs ...int64) models.ExamDate {
	return models.ExamDate{
		ID:             id,
		Date:           date,
		AvailableSpots: spots,
		IsActive:       true,
		FacultyIDs:     facultyIDs,
	}
}

func TestFacultiesForProgram(t *testing.T) {
	physics := models.Faculty{ID: 1, Name: "Bachelor's degree - Physics", Program: models.ProgramBachelor}
	groups := []models.FacultyGroup{
		{Program: "Bachelor's degree", Faculties: []models.Faculty{physics}},
		{Program: "Master's degree", Faculties: []models.Faculty{}},
	}

	got := selection.FacultiesForProgram(models.ProgramBachelor, groups)
	require.Len(t, got, 1)
	assert.Equal(t, physics.ID, got[0].ID)

	assert.Empty(t, selection.FacultiesForProgram(models.ProgramMaster, groups))
}

func TestExamDatesForFaculty_FiltersAndSorts(t *testing.T) {
	day := 24 * time.Hour
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	dates := []models.ExamDate{
		examDate(1, base.Add(10*day), 50, 1, 2),
		examDate(2, base, 50, 1),
		examDate(3, base.Add(5*day), 30, 2),
	}

	got := selection.ExamDatesForFaculty(1, dates)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID, "results must be ordered ascending by date")
	assert.Equal(t, int64(1), got[1].ID)
}

func TestExamDatesForFaculty_NoLinkageYieldsEmpty(t *testing.T) {
	dates := []models.ExamDate{
		examDate(1, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), 50, 2),
	}

	got := selection.ExamDatesForFaculty(99, dates)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRemainingSpots(t *testing.T) {
	d := examDate(1, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), 50, 1)
	assert.Equal(t, 50, selection.RemainingSpots(d))
}

func TestAssignmentValid(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	dates := []models.ExamDate{
		examDate(1, base, 50, 1),
		examDate(2, base, 50, 2),
	}

	assert.True(t, selection.AssignmentValid(1, 1, dates))
	assert.False(t, selection.AssignmentValid(1, 2, dates), "exam date linked to another faculty")
	assert.False(t, selection.AssignmentValid(1, 99, dates), "unknown exam date")
	assert.False(t, selection.AssignmentValid(99, 1, dates), "unknown faculty")
}
