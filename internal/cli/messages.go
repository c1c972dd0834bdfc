package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nichescope/internal/common"
)

// userMessage turns an error into the line shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return "An account with this email already exists."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrValidation):
		return "Please fill in every field."
	case errors.Is(err, common.ErrNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, common.ErrEmptyTopic):
		return "Please enter a topic."
	case errors.Is(err, common.ErrConfiguration):
		return "The analysis service is not configured: set API_KEY."
	case errors.Is(err, common.ErrAnalysisFailure):
		return "Could not analyze this market right now. Please try again later."
	default:
		return "Error: " + err.Error()
	}
}

// fail prints the user message for err and returns err. Only unexpected
// errors are logged; account and input errors are expected outcomes.
func (a *App) fail(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail),
		errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrNotLoggedIn),
		errors.Is(err, common.ErrEmptyTopic),
		errors.Is(err, common.ErrAnalysisFailure):
	default:
		a.deps.Log.Error(ctx, "command failed", "error", err)
	}
	fmt.Fprintln(a.out, userMessage(err))
	return err
}
