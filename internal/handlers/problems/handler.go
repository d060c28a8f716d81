package problems

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/services/problem"
	"gitlab.com/codearena.net/internal/domain"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
)

type Handler struct {
	problemService problem.IProblemService
	logger         primary.Logger
}

func NewHandler(problemService problem.IProblemService, logger primary.Logger) *Handler {
	return &Handler{
		problemService: problemService,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	byID := "/problems/{id:" + handlers.UUIDPattern + "}"

	router.HandleFunc("/problems", mw.Admin(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/problems", mw.Authenticate(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/problems/solved", mw.Authenticate(h.ListSolved)).Methods(http.MethodGet)
	router.HandleFunc(byID, mw.Authenticate(h.Get)).Methods(http.MethodGet)
	router.HandleFunc(byID, mw.Admin(h.Update)).Methods(http.MethodPut)
	router.HandleFunc(byID, mw.Admin(h.Delete)).Methods(http.MethodDelete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())

	var req domain.ProblemInput
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	p, err := h.problemService.Create(r.Context(), user.ID, req)
	if err != nil {
		h.logger.Warn("Failed to create problem", "userId", user.ID, "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, "Problem created successfully", p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	var req domain.ProblemInput
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	p, err := h.problemService.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Warn("Failed to update problem", "problemId", id, "error", err)
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Problem updated successfully", p)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	p, err := h.problemService.Get(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Problem fetched successfully", p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	problems, err := h.problemService.List(r.Context())
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Problems fetched successfully", problems)
}

func (h *Handler) ListSolved(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())

	problems, err := h.problemService.ListSolvedBy(r.Context(), user.ID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Solved problems fetched successfully", problems)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	if err := h.problemService.Delete(r.Context(), id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Problem deleted successfully", nil)
}
