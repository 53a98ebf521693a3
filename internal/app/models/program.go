package models

import (
	"strings"

	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
)

// Program is the academic track a faculty belongs to. It is a closed
// enumeration: any other label coming from a client or the store is a data
// error, never matched loosely.
type Program string

const (
	ProgramBachelor Program = "bachelor"
	ProgramMaster   Program = "master"
)

// Display labels used by the intake form and carried as faculty name prefixes.
const (
	bachelorLabel = "Bachelor's degree"
	masterLabel   = "Master's degree"
)

// ParseProgram resolves a client-supplied program value to the closed enum.
// Both the enum values ("bachelor") and the display labels
// ("Bachelor's degree") are accepted; anything else fails.
func ParseProgram(s string) (Program, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ProgramBachelor), strings.ToLower(bachelorLabel):
		return ProgramBachelor, nil
	case string(ProgramMaster), strings.ToLower(masterLabel):
		return ProgramMaster, nil
	}
	return "", apperrors.NewCustomError(apperrors.ErrUnknownProgram, "unknown program: "+s)
}

// Valid reports whether p is one of the two known programs.
func (p Program) Valid() bool {
	return p == ProgramBachelor || p == ProgramMaster
}

// Label returns the display label for the program.
func (p Program) Label() string {
	if p == ProgramMaster {
		return masterLabel
	}
	return bachelorLabel
}
