package document

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileNotFound     = errors.New("document file is missing from storage")
)
