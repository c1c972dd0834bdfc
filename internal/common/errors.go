package common

import "errors"

var (
	// Configuration errors.
	ErrConfiguration = errors.New("configuration error: api key is missing")

	// Account errors.
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("validation error")
	ErrNotLoggedIn        = errors.New("not logged in")

	// Analysis errors.
	ErrEmptyTopic      = errors.New("topic must not be empty")
	ErrEmptyResponse   = errors.New("empty response from completion service")
	ErrAnalysisFailure = errors.New("market analysis failed")
)
