package config

import "errors"

var (
	// ErrLoadConfig indicates a configuration source could not be read or parsed.
	ErrLoadConfig = errors.New("failed to load configuration")

	// ErrInvalidConfig indicates the merged configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)
