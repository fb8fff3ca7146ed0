package validator

import "errors"

var (
	ErrEmptyURL       = errors.New("URL cannot be empty")
	ErrInvalidURL     = errors.New("invalid URL format")
	ErrNotAbsolute    = errors.New("URL must be absolute (include a scheme)")
	ErrInvalidHost    = errors.New("URL must have a valid host")
	ErrEmptyShortCode = errors.New("short code cannot be empty")
)
