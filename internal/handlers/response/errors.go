package response

import (
	"errors"
	"net/http"

	"gitlab.com/codearena.net/internal/global/logger"
	"gitlab.com/codearena.net/internal/static/errs"
)

// WriteServiceError maps a service error onto its HTTP status. Unknown errors
// are logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, err error) {
	msg := ErrorMessage{Message: err.Error()}

	var (
		invalidTestCases *errs.InvalidTestCasesError
		unsupported      *errs.UnsupportedLanguageError
		referenceFailed  *errs.ReferenceSolutionFailedError
		judgeUnavailable *errs.JudgeUnavailableError
		judgeTimeout     *errs.JudgeTimeoutError
		storageFailure   *errs.StorageError
	)

	switch {
	case errors.As(err, &invalidTestCases):
		msg.StatusCode = http.StatusBadRequest
	case errors.As(err, &unsupported):
		msg.StatusCode = http.StatusBadRequest
	case errors.As(err, &referenceFailed):
		msg.StatusCode = http.StatusBadRequest
		msg.Details = map[string]interface{}{
			"language": referenceFailed.Language,
			"testCase": referenceFailed.TestCaseIndex + 1,
			"status":   referenceFailed.Status,
		}
	case errors.As(err, &judgeTimeout):
		msg.StatusCode = http.StatusGatewayTimeout
	case errors.As(err, &judgeUnavailable):
		msg.StatusCode = http.StatusBadGateway
	case errors.As(err, &storageFailure):
		logger.Error("Storage failure", "op", storageFailure.Op, "error", storageFailure.Err)
		msg.StatusCode = http.StatusInternalServerError
		msg.Message = "failed to store result"
	case errors.Is(err, errs.InvalidInput),
		errors.Is(err, errs.EmailRequired),
		errors.Is(err, errs.WeakPassword):
		msg.StatusCode = http.StatusBadRequest
	case errors.Is(err, errs.Unauthorized), errors.Is(err, errs.InvalidCredentials):
		msg.StatusCode = http.StatusUnauthorized
	case errors.Is(err, errs.Forbidden):
		msg.StatusCode = http.StatusForbidden
	case errors.Is(err, errs.NotFound):
		msg.StatusCode = http.StatusNotFound
	case errors.Is(err, errs.Conflict), errors.Is(err, errs.EmailTaken):
		msg.StatusCode = http.StatusConflict
	default:
		logger.Error("Unhandled service error", "error", err)
		msg.StatusCode = http.StatusInternalServerError
		msg.Message = "internal server error"
	}

	WriteError(w, msg)
}
