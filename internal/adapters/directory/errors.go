package directory

import "errors"

// Sentinel kinds for directory errors.
var (
	ErrLoadDirectory  = errors.New("load employee directory failed")
	ErrParseDirectory = errors.New("parse employee directory failed")
)
