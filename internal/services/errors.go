package services

import "errors"

var (
	ErrInvalidTemplate  = errors.New("invalid resume template")
	ErrMissingField     = errors.New("missing required field")
	ErrGenerationFailed = errors.New("text generation failed")
	ErrEmptyCompletion  = errors.New("empty completion")
	ErrExportFailed     = errors.New("document export failed")
	ErrUnsupportedFile  = errors.New("unsupported file type")
	ErrEmptyDocument    = errors.New("no text content found in document")
	ErrFileTooLarge     = errors.New("uploaded file too large")
)
