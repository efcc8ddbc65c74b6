package services

import "errors"

var (
	ErrEmailInUse          = errors.New("email already in use")
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotConfirmed = errors.New("account not confirmed")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrInvalidToken        = errors.New("invalid token")
)
