package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode is unknown to the product database
	ErrProductNotFound = errors.New("product not found in product database")

	// ErrNetwork is returned when the product database request fails in transport or with a bad status
	ErrNetwork = errors.New("product database request failed")

	// ErrStorage is returned when the preference backend cannot be written
	ErrStorage = errors.New("preference storage unavailable")

	// ErrCapture is returned when a barcode could not be acquired
	ErrCapture = errors.New("barcode capture failed")

	// ErrParse marks a persisted value that could not be decoded.
	// It is always recovered locally and never returned to callers.
	ErrParse = errors.New("malformed persisted value")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrEmptyAvoidList is returned when scanning is attempted before any ingredient is avoided
	ErrEmptyAvoidList = errors.New("no avoided ingredients configured")
)
