package models

import "errors"

// Application-wide standard errors
var (
	// Common resource errors
	ErrNotFound           = errors.New("resource not found")
	ErrGenerationNotFound = errors.New("generation not found")
	ErrArtifactNotFound   = errors.New("artifact not found")
	ErrEntityNotFound     = errors.New("entity not found")

	// Authentication / authorization
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Request errors
	ErrInvalidInput = errors.New("invalid input data")

	// Workflow errors
	ErrMissingPrecondition = errors.New("required upstream artifact is missing")
	ErrEntityNotDeletable  = errors.New("only custom entities can be deleted")
	ErrMainCharacterImage  = errors.New("main character reference comes from step 1 selection")

	// Upstream service errors
	ErrGenerationFailed = errors.New("generation service failed")

	ErrInternalServer = errors.New("internal server error")
)
