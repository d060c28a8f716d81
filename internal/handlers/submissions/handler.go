package submissions

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/services/submission"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
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
	byProblem := "/submissions/problems/{problemId:" + handlers.UUIDPattern + "}"

	router.HandleFunc("/submissions", mw.Authenticate(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/submissions/{id:"+handlers.UUIDPattern+"}", mw.Authenticate(h.Get)).Methods(http.MethodGet)
	router.HandleFunc(byProblem, mw.Authenticate(h.ListForProblem)).Methods(http.MethodGet)
	router.HandleFunc(byProblem+"/count", mw.Authenticate(h.CountForProblem)).Methods(http.MethodGet)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())

	subs, err := h.submissionService.ListByUser(r.Context(), user.ID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Submissions fetched successfully", subs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	sub, err := h.submissionService.Get(r.Context(), user.ID, id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Submission fetched successfully", sub)
}

func (h *Handler) ListForProblem(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())
	problemID, err := handlers.PathUUID(r, "problemId")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	subs, err := h.submissionService.ListByUserAndProblem(r.Context(), user.ID, problemID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Submissions fetched successfully", subs)
}

func (h *Handler) CountForProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := handlers.PathUUID(r, "problemId")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	count, err := h.submissionService.CountByProblem(r.Context(), problemID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Submission count fetched successfully", map[string]int{"count": count})
}
