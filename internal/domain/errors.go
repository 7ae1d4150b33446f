package domain

import "errors"

var (
	ErrValidation         = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrDuplicateOperation = errors.New("duplicate operation")
	ErrPaymentProcessor   = errors.New("payment processor failure")
	ErrPaymentNotComplete = errors.New("payment not complete")
	ErrAccessDenied       = errors.New("access denied")
)
