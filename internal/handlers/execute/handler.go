package execute

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/services/submission"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
	"gitlab.com/codearena.net/internal/static/errs"
)

type Handler struct {
	submissionService submission.ISubmissionService
	logger            primary.Logger
}

func NewHandler(submissionService submission.ISubmissionService, logger primary.Logger) *Handler {
	return &Handler{
		submissionService: submissionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/execute", mw.Authenticate(h.Execute)).Methods(http.MethodPost)
}

// ExecuteResponse carries the stored submission; Verdict is kept alongside
// so a client sees per-case results even if the write failed.
type ExecuteResponse struct {
	Submission *domain.Submission        `json:"submission,omitempty"`
	Verdict    *domain.EvaluationVerdict `json:"verdict"`
}

func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())

	var req submission.ExecuteInput
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	sub, verdict, err := h.submissionService.Execute(r.Context(), user.ID, req)
	if err != nil {
		var storageErr *errs.StorageError
		if errors.As(err, &storageErr) && verdict != nil {
			h.logger.Error("Evaluated submission was not stored", "userId", user.ID, "problemId", req.ProblemID, "error", err)
			response.WriteError(w, response.ErrorMessage{
				Message:    "code evaluated but the result could not be saved",
				StatusCode: http.StatusInternalServerError,
				Details:    ExecuteResponse{Verdict: verdict},
			})
			return
		}
		response.WriteServiceError(w, err)
		return
	}

	response.WriteSuccess(w, http.StatusOK, "Code executed successfully", ExecuteResponse{
		Submission: sub,
		Verdict:    verdict,
	})
}
