package config

import "errors"

var (
	// ErrEmptySourceURL is returned when no source URL is configured
	ErrEmptySourceURL = errors.New("source_url cannot be empty")
	// ErrInvalidTargetSize is returned when the target size is negative
	ErrInvalidTargetSize = errors.New("target_size cannot be negative")
	// ErrInvalidConcurrency is returned when detail concurrency is not greater than 0
	ErrInvalidConcurrency = errors.New("detail_concurrency must be greater than 0")
	// ErrInvalidTimeout is returned when a timeout is not greater than 0
	ErrInvalidTimeout = errors.New("timeouts must be greater than 0")
	// ErrEmptyOutputPath is returned when the output path is empty
	ErrEmptyOutputPath = errors.New("output_path cannot be empty")
)
