package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Exam date payloads arrive as multipart form data: date, available_spots,
// faculty_ids (JSON array) and faculty_ids_str (comma-joined duplicate of the
// same ids, required redundantly by the transport contract).

// CreateExamDateForm represents exam date creation data.
type CreateExamDateForm struct {
	Date           string `form:"date" binding:"required"`
	AvailableSpots int    `form:"available_spots" binding:"required"`
	FacultyIDs     string `form:"faculty_ids" binding:"required"`
	FacultyIDsStr  string `form:"faculty_ids_str" binding:"required"`
}

// UpdateExamDateForm represents a partial exam date update. The linkage set
// is always sent in full; date, spots and is_active are optional.
type UpdateExamDateForm struct {
	Date           string  `form:"date"`
	AvailableSpots *int    `form:"available_spots"`
	IsActive       *bool   `form:"is_active"`
	FacultyIDs     string  `form:"faculty_ids" binding:"required"`
	FacultyIDsStr  *string `form:"faculty_ids_str"`
}

// ParseFacultyIDs decodes a faculty_ids JSON array ("[1,2,3]").
func ParseFacultyIDs(raw string) ([]int64, error) {
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("faculty_ids must be a JSON array of integers: %w", err)
	}
	return ids, nil
}

// ParseFacultyIDsStr decodes the comma-joined duplicate ("1,2,3").
func ParseFacultyIDsStr(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int64{}, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("faculty_ids_str must be comma-joined integers: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
