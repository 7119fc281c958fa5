package services

import "errors"

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrSearchNotConfigured = errors.New("game search is not configured")
	ErrSearchUnavailable   = errors.New("game search is unavailable")
)
