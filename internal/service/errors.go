package service

import "errors"

var (
	ErrValidation     = errors.New("validation")          // 400
	ErrUnauthorized   = errors.New("invalid credentials") // 401
	ErrNotFound       = errors.New("not found")           // 404
	ErrConflict       = errors.New("conflict")            // 400 at /register
	ErrImagesDisabled = errors.New("image storage is not configured")
)
