package dto

// CreateApplicationForm is the public intake submission (multipart form).
type CreateApplicationForm struct {
	FirstName       string   `form:"first_name" binding:"required"`
	LastName        string   `form:"last_name" binding:"required"`
	MiddleName      string   `form:"middle_name"`
	Gender          string   `form:"gender" binding:"required"`
	Phone           string   `form:"phone" binding:"required"`
	School          string   `form:"school" binding:"required"`
	ProgramDegree   string   `form:"program_degree" binding:"required"`
	FacultyID       int64    `form:"faculty_id" binding:"required"`
	ExamDateID      int64    `form:"exam_date_id" binding:"required"`
	HasEnglishCert  bool     `form:"has_english_cert"`
	EnglishCertType string   `form:"english_cert_type"`
	CertScore       *float64 `form:"cert_score"`
	TermsAccepted   bool     `form:"terms_accepted"`
}

// UpdateApplicationRequest is the admin edit payload: reassignment and/or a
// payment status transition.
type UpdateApplicationRequest struct {
	FacultyID     *int64  `json:"faculty_id"`
	ExamDateID    *int64  `json:"exam_date_id"`
	PaymentStatus *string `json:"payment_status"`
}

// ApplicationFilter captures the dashboard list filters.
type ApplicationFilter struct {
	Search        string `form:"search"`
	FacultyID     *int64 `form:"faculty_id"`
	PaymentStatus string `form:"payment_status"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	Page          int    `form:"page,default=1"`
	Limit         int    `form:"limit,default=20"`
}
