package proposal

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("proposal not found")
	ErrForbidden               = errors.New("forbidden")
	ErrNotVerified             = errors.New("professional is not verified")
	ErrRequestClosed           = errors.New("request is not accepting proposals")
	ErrDuplicateProposal       = errors.New("proposal already submitted for this request")
	ErrInvalidStatusTransition = errors.New("invalid proposal status transition")
)
