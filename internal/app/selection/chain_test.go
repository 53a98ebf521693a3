package selection_test

import (
	"testing"

	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/app/selection"
	"github.com/stretchr/testify/assert"
)

func TestChain_OrderedProgression(t *testing.T) {
	var c selection.Chain
	assert.Equal(t, selection.StateEmpty, c.State())

	assert.True(t, c.SetProgram(models.ProgramBachelor))
	assert.Equal(t, selection.StateProgramChosen, c.State())

	assert.True(t, c.SetFaculty(7))
	assert.Equal(t, selection.StateFacultyChosen, c.State())

	assert.True(t, c.SetExamDate(3))
	assert.Equal(t, selection.StateExamDateChosen, c.State())
	assert.Equal(t, int64(7), c.FacultyID())
	assert.Equal(t, int64(3), c.ExamDateID())
}

func TestChain_PrerequisiteMissingIsNoOp(t *testing.T) {
	var c selection.Chain

	assert.False(t, c.SetFaculty(7), "faculty before program must be rejected")
	assert.False(t, c.SetExamDate(3), "exam date before faculty must be rejected")
	assert.Equal(t, selection.StateEmpty, c.State())
}

func TestChain_ProgramChangeClearsDownstream(t *testing.T) {
	var c selection.Chain
	c.SetProgram(models.ProgramMaster)
	c.SetFaculty(7)
	c.SetExamDate(3)

	assert.True(t, c.SetProgram(models.ProgramBachelor))

	assert.Equal(t, models.ProgramBachelor, c.Program())
	assert.Zero(t, c.FacultyID())
	assert.Zero(t, c.ExamDateID())
	assert.Equal(t, selection.StateProgramChosen, c.State())
}

func TestChain_FacultyChangeClearsExamDate(t *testing.T) {
	var c selection.Chain
	c.SetProgram(models.ProgramBachelor)
	c.SetFaculty(7)
	c.SetExamDate(3)

	assert.True(t, c.SetFaculty(8))
	assert.Zero(t, c.ExamDateID())
	assert.Equal(t, selection.StateFacultyChosen, c.State())
}

func TestChain_InvalidProgramRejected(t *testing.T) {
	var c selection.Chain
	c.SetProgram(models.ProgramBachelor)
	c.SetFaculty(7)

	assert.False(t, c.SetProgram(models.Program("phd")))
	// a rejected set leaves the chain untouched
	assert.Equal(t, int64(7), c.FacultyID())
}

func TestChain_Reset(t *testing.T) {
	var c selection.Chain
	c.SetProgram(models.ProgramBachelor)
	c.SetFaculty(7)
	c.Reset()

	assert.Equal(t, selection.StateEmpty, c.State())
	assert.False(t, c.SetExamDate(1))
}
