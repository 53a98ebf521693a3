package models

import "time"

// Gender of an applicant.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a known gender value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// PaymentStatus tracks the payment state of an application.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentFailed     PaymentStatus = "failed"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next. The ledger is
// monotonic (pending -> processing -> paid|failed) except for retries, which
// may move failed back to processing. Setting the same status again is a
// permitted no-op.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case PaymentPending:
		return next == PaymentProcessing
	case PaymentProcessing:
		return next == PaymentPaid || next == PaymentFailed
	case PaymentFailed:
		return next == PaymentProcessing
	}
	return false
}

// EnglishCertType is a recognized English proficiency certificate.
type EnglishCertType string

const (
	CertIELTS     EnglishCertType = "IELTS"
	CertTOEFL     EnglishCertType = "TOEFL"
	CertCambridge EnglishCertType = "CAMBRIDGE"
)

// Valid reports whether t is a known certificate type.
func (t EnglishCertType) Valid() bool {
	return t == CertIELTS || t == CertTOEFL || t == CertCambridge
}

// Application is a submitted admission application. FacultyID and ExamDateID
// are stored without foreign keys on purpose: deleting a faculty or exam date
// must not cascade into applications, the dangling pair is surfaced to the
// administrator instead.
type Application struct {
	ID              int64           `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	MiddleName      string          `json:"middle_name,omitempty"`
	Gender          Gender          `json:"gender"`
	Phone           string          `json:"phone"`
	School          string          `json:"school"`
	ProgramDegree   Program         `json:"program_degree"`
	FacultyID       int64           `json:"faculty_id"`
	ExamDateID      int64           `json:"exam_date_id"`
	HasEnglishCert  bool            `json:"has_english_cert"`
	EnglishCertType EnglishCertType `json:"english_cert_type,omitempty"`
	CertScore       *float64        `json:"cert_score,omitempty"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	TermsAccepted   bool            `json:"terms_accepted"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// AssignmentAvailable is false when the stored faculty/exam-date pair can
	// no longer be resolved against the current linkage graph. Derived on
	// read, never persisted.
	AssignmentAvailable bool `json:"assignment_available"`
}
