package domain

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrUploadsDisabled = errors.New("uploads disabled for event")
	ErrQuotaExceeded   = errors.New("upload quota exceeded")
	ErrValidation      = errors.New("invalid input")
	ErrStorage         = errors.New("storage operation failed")
)
