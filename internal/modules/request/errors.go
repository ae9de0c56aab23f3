package request

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrNotFound                = errors.New("service request not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid request status transition")
)
