package dto

// CreateFacultyRequest represents faculty creation data. Program accepts the
// enum value ("bachelor") or the display label ("Bachelor's degree").
type CreateFacultyRequest struct {
	Name    string `json:"name" binding:"required"`
	Program string `json:"program" binding:"required"`
}

// UpdateFacultyRequest represents faculty update data.
type UpdateFacultyRequest struct {
	Name     string `json:"name" binding:"required"`
	Program  string `json:"program" binding:"required"`
	IsActive bool   `json:"is_active"`
}

// IDResponse carries a created resource identifier.
type IDResponse struct {
	ID int64 `json:"id"`
}
