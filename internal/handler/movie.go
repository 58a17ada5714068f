package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/apiwat-s/screenscout-api/internal/model"
	"github.com/apiwat-s/screenscout-api/internal/usecase"
)

// MovieHandler serves the cached movie metadata endpoints.
type MovieHandler struct {
	movieUsecase usecase.MovieUsecase
	validator    *requestValidator
	logger       *zerolog.Logger
}

// NewMovieHandler constructs the MovieHandler.
func NewMovieHandler(movieUsecase usecase.MovieUsecase, logger *zerolog.Logger) *MovieHandler {
	return &MovieHandler{
		movieUsecase: movieUsecase,
		validator:    newRequestValidator(),
		logger:       logger,
	}
}

func (h *MovieHandler) CacheMovie(w http.ResponseWriter, r *http.Request) {
	var req CacheMovieRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := h.validator.Struct(req); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	movie, err := h.movieUsecase.CacheMovie(r.Context(), &model.CachedMovie{
		TMDBID: req.TMDBID,
		Type:   req.Type,
		Data:   req.Data,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to cache movie")
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	mediaType := chi.URLParam(r, "type")
	if mediaType != "movie" && mediaType != "tv" {
		respondMessage(w, http.StatusBadRequest, "Invalid media type")
		return
	}

	tmdbID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid movie id")
		return
	}

	movie, err := h.movieUsecase.GetMovie(r.Context(), mediaType, tmdbID)
	if err != nil {
		if errors.Is(err, usecase.ErrMovieNotFound) {
			respondMessage(w, http.StatusNotFound, "Movie not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to get movie")
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, movie)
}
