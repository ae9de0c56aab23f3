package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrAccountLocked       = errors.New("account temporarily locked")
	ErrAccountBanned       = errors.New("account banned")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenReused  = errors.New("refresh token reuse detected")
	ErrUnauthorized        = errors.New("unauthorized")
)
