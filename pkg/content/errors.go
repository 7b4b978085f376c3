package content

import "errors"

var (
	ErrInvalidContent    = errors.New("content: invalid document")
	ErrUnsupportedFormat = errors.New("content: unsupported format")
)
