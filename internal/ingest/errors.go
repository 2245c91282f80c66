package ingest

import "errors"

// ErrInsufficientText indicates the extracted text was too short to be a
// parseable resume.
var ErrInsufficientText = errors.New("insufficient text extracted")
