package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/apiwat-s/screenscout-api/internal/middleware"
	"github.com/apiwat-s/screenscout-api/internal/usecase"
)

// UserHandler serves the bearer-guarded profile, favorites, and
// search-history endpoints.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *requestValidator
	logger      *zerolog.Logger
}

// NewUserHandler constructs the UserHandler.
func NewUserHandler(userUsecase usecase.UserUsecase, logger *zerolog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   newRequestValidator(),
		logger:      logger,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.userUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		h.respondUserError(w, err, "failed to get profile")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	favorites, err := h.userUsecase.GetFavorites(r.Context(), userID)
	if err != nil {
		h.respondUserError(w, err, "failed to get favorites")
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

func (h *UserHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req AddFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := h.validator.Struct(req); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	favorites, err := h.userUsecase.AddFavorite(r.Context(), userID, req.Movie)
	if err != nil {
		h.respondUserError(w, err, "failed to add favorite")
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

func (h *UserHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req RemoveFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := h.validator.Struct(req); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	favorites, err := h.userUsecase.RemoveFavorite(r.Context(), userID, req.MovieID)
	if err != nil {
		h.respondUserError(w, err, "failed to remove favorite")
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}

func (h *UserHandler) GetSearchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	history, err := h.userUsecase.GetSearchHistory(r.Context(), userID)
	if err != nil {
		h.respondUserError(w, err, "failed to get search history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (h *UserHandler) AddSearchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req AddSearchHistoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := h.validator.Struct(req); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	history, err := h.userUsecase.AddSearchQuery(r.Context(), userID, req.Query)
	if err != nil {
		h.respondUserError(w, err, "failed to add search history")
		return
	}

	respondJSON(w, http.StatusOK, history)
}

func (h *UserHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}

	return claims.UserID, true
}

func (h *UserHandler) respondUserError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, usecase.ErrUserNotFound) {
		respondMessage(w, http.StatusNotFound, "User not found")
		return
	}

	h.logger.Error().Err(err).Msg(logMsg)
	respondMessage(w, http.StatusInternalServerError, "Server error")
}
