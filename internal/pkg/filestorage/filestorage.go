package filestorage

import "mime/multipart"

// FileStorage defines the interface for applicant document storage.
type FileStorage interface {
	// SaveFile saves a file under the given subdirectory and returns the
	// stored path relative to the storage root.
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file.
	DeleteFile(filePath string) error

	// URL returns the public URL for a stored path.
	URL(filePath string) string
}
