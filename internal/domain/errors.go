package domain

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrProfileNotFound    = errors.New("company profile not found")
	ErrTenderNotFound     = errors.New("tender not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrSecretNotFound     = errors.New("secret not found")

	ErrQuotaExceeded       = errors.New("quota exceeded")
	ErrFeatureLocked       = errors.New("feature locked")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")

	ErrMalformedExtraction = errors.New("malformed extraction")
	ErrMalformedGeneration = errors.New("malformed generation")
	ErrTransportFailure    = errors.New("oracle transport failure")

	ErrImportVersionMismatch = errors.New("import version mismatch")
	ErrImportCorrupt         = errors.New("import corrupt")
)
