package playlists

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/codearena.net/internal/core/ports/primary"
	"gitlab.com/codearena.net/internal/core/services/playlist"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/response"
)

type Handler struct {
	playlistService playlist.IPlaylistService
	logger          primary.Logger
}

func NewHandler(playlistService playlist.IPlaylistService, logger primary.Logger) *Handler {
	return &Handler{
		playlistService: playlistService,
		logger:          logger,
	}
}

type ProblemIDsRequest struct {
	ProblemIDs []uuid.UUID `json:"problemIds"`
}

func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	byID := "/playlists/{id:" + handlers.UUIDPattern + "}"

	router.HandleFunc("/playlists", mw.Authenticate(h.Create)).Methods(http.MethodPost)
	router.HandleFunc("/playlists", mw.Authenticate(h.List)).Methods(http.MethodGet)
	router.HandleFunc(byID, mw.Authenticate(h.Get)).Methods(http.MethodGet)
	router.HandleFunc(byID, mw.Authenticate(h.Delete)).Methods(http.MethodDelete)
	router.HandleFunc(byID+"/problems", mw.Authenticate(h.AddProblems)).Methods(http.MethodPost)
	router.HandleFunc(byID+"/problems", mw.Authenticate(h.RemoveProblems)).Methods(http.MethodDelete)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())

	var req playlist.CreateInput
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	p, err := h.playlistService.Create(r.Context(), user.ID, req)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusCreated, "Playlist created successfully", p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())

	playlists, err := h.playlistService.ListByUser(r.Context(), user.ID)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Playlists fetched successfully", playlists)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	p, err := h.playlistService.Get(r.Context(), user.ID, id)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Playlist fetched successfully", p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := handlers.CurrentUser(r.Context())
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	if err := h.playlistService.Delete(r.Context(), user.ID, id); err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, "Playlist deleted successfully", nil)
}

func (h *Handler) AddProblems(w http.ResponseWriter, r *http.Request) {
	h.changeProblems(w, r, h.playlistService.AddProblems, "Problems added to playlist successfully")
}

func (h *Handler) RemoveProblems(w http.ResponseWriter, r *http.Request) {
	h.changeProblems(w, r, h.playlistService.RemoveProblems, "Problems removed from playlist successfully")
}

type problemsChange func(ctx context.Context, userID, id uuid.UUID, problemIDs []uuid.UUID) (int64, error)

func (h *Handler) changeProblems(w http.ResponseWriter, r *http.Request, apply problemsChange, message string) {
	user, _ := handlers.CurrentUser(r.Context())
	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}

	var req ProblemIDsRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		response.WriteServiceError(w, err)
		return
	}

	n, err := apply(r.Context(), user.ID, id, req.ProblemIDs)
	if err != nil {
		response.WriteServiceError(w, err)
		return
	}
	response.WriteSuccess(w, http.StatusOK, message, map[string]int64{"count": n})
}
