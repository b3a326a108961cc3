package app

import "errors"

// Sentinel kinds for service-level validation errors.
var (
	ErrInvalidDecision = errors.New("decision must be APPROVED or REJECTED")
	ErrInvalidStage    = errors.New("committee stage must be PRE_FINAL or FINAL")
)
