package errorhandler

import (
	"context"
	"net/http"

	"github.com/startupquest/quest-api/internal/pkg/logger"
	"github.com/startupquest/quest-api/internal/pkg/response"
)

// HandleError logs an unexpected failure and writes the error envelope.
// Expected domain outcomes (duplicates, replays, illegal transitions) should be
// written with response.Error directly so they are not reported as failures.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("error_code", code).
		Str("error_message", message).
		Int("status_code", status)

	if err != nil {
		event = event.Err(err)
	}

	event.Msg("Request error")

	response.Error(w, status, code, message)
}

// HandleInternal is HandleError for the generic 500 case.
func HandleInternal(ctx context.Context, w http.ResponseWriter, err error) {
	HandleError(ctx, w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", err)
}

// LogDatabaseError logs database errors with context
func LogDatabaseError(ctx context.Context, operation string, err error) {
	logger.FromContext(ctx).Error().
		Str("operation", operation).
		Err(err).
		Msg("Database error")
}
