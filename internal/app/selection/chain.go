// Package selection holds the pure logic behind the dependent
// program -> faculty -> exam date choice: the selection chain state machine
// and the capacity resolver. It performs no I/O; callers pass in snapshots
// fetched elsewhere.
package selection

import "github.com/lilnurik/uniadmit/internal/app/models"

// State identifies how far down the chain a selection has progressed.
type State int

const (
	StateEmpty State = iota
	StateProgramChosen
	StateFacultyChosen
	StateExamDateChosen
)

// Chain enforces the ordered selection program -> faculty -> exam date.
// Setting an upstream slot always clears everything downstream; setting a
// slot whose prerequisite is unset is a no-op, not an error, mirroring the
// disabled selects of the intake form.
type Chain struct {
	program    models.Program
	facultyID  int64
	examDateID int64
}

// SetProgram chooses a program and clears any faculty and exam date choice.
// Unknown programs are rejected as a no-op.
func (c *Chain) SetProgram(p models.Program) bool {
	if !p.Valid() {
		return false
	}
	c.program = p
	c.facultyID = 0
	c.examDateID = 0
	return true
}

// SetFaculty chooses a faculty and clears any exam date choice. Only legal
// once a program is chosen.
func (c *Chain) SetFaculty(id int64) bool {
	if c.program == "" || id <= 0 {
		return false
	}
	c.facultyID = id
	c.examDateID = 0
	return true
}

// SetExamDate chooses an exam date. Only legal once a faculty is chosen.
func (c *Chain) SetExamDate(id int64) bool {
	if c.facultyID == 0 || id <= 0 {
		return false
	}
	c.examDateID = id
	return true
}

// Reset clears every slot.
func (c *Chain) Reset() {
	c.program = ""
	c.facultyID = 0
	c.examDateID = 0
}

// Program returns the chosen program, or the empty string.
func (c *Chain) Program() models.Program { return c.program }

// FacultyID returns the chosen faculty id, or zero.
func (c *Chain) FacultyID() int64 { return c.facultyID }

// ExamDateID returns the chosen exam date id, or zero.
func (c *Chain) ExamDateID() int64 { return c.examDateID }

// State reports the current chain state.
func (c *Chain) State() State {
	switch {
	case c.examDateID != 0:
		return StateExamDateChosen
	case c.facultyID != 0:
		return StateFacultyChosen
	case c.program != "":
		return StateProgramChosen
	}
	return StateEmpty
}
