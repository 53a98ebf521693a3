package models_test

import (
	"testing"

	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFacultyName(t *testing.T) {
	assert.Equal(t, "Bachelor's degree - Physics", models.FormatFacultyName("Physics", models.ProgramBachelor))
	assert.Equal(t, "Master's degree - Physics", models.FormatFacultyName("Physics", models.ProgramMaster))
}

func TestFormatFacultyName_Idempotent(t *testing.T) {
	once := models.FormatFacultyName("Physics", models.ProgramBachelor)
	twice := models.FormatFacultyName(once, models.ProgramBachelor)
	assert.Equal(t, once, twice)
}

func TestStripProgramPrefix_RoundTrip(t *testing.T) {
	names := []string{"Physics", "Computer Science", "Art - History"}
	for _, name := range names {
		for _, program := range []models.Program{models.ProgramBachelor, models.ProgramMaster} {
			formatted := models.FormatFacultyName(name, program)
			assert.Equal(t, name, models.StripProgramPrefix(formatted), "strip must invert format for %q under %s", name, program)
		}
	}
}

func TestStripProgramPrefix_PlainName(t *testing.T) {
	assert.Equal(t, "Physics", models.StripProgramPrefix("Physics"))
}

func TestParseProgram(t *testing.T) {
	tests := []struct {
		input string
		want  models.Program
	}{
		{"bachelor", models.ProgramBachelor},
		{"master", models.ProgramMaster},
		{"Bachelor's degree", models.ProgramBachelor},
		{"Master's degree", models.ProgramMaster},
	}
	for _, tt := range tests {
		got, err := models.ParseProgram(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseProgram_Unknown(t *testing.T) {
	_, err := models.ParseProgram("phd")
	assert.Error(t, err)
}
