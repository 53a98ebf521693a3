package models

import "time"

// DocumentType classifies an uploaded applicant document.
type DocumentType string

const (
	DocumentPassport    DocumentType = "passport"
	DocumentPhoto       DocumentType = "photo"
	DocumentEnglishCert DocumentType = "english_cert"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	return t == DocumentPassport || t == DocumentPhoto || t == DocumentEnglishCert
}

// Document is a stored file attached to an application.
type Document struct {
	ID            int64        `json:"id"`
	ApplicationID int64        `json:"application_id"`
	DocumentType  DocumentType `json:"document_type"`
	FilePath      string       `json:"file_path"`
	URL           string       `json:"url,omitempty"`
	OriginalName  string       `json:"original_name,omitempty"`
	UploadedAt    time.Time    `json:"uploaded_at"`
}
