// Package handler exposes the HTTP API surface.
package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/apiwat-s/screenscout-api/internal/usecase"
)

// AuthHandler serves the public authentication endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *requestValidator
	logger      *zerolog.Logger
}

// NewAuthHandler constructs the AuthHandler.
func NewAuthHandler(authUsecase usecase.AuthUsecase, logger *zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   newRequestValidator(),
		logger:      logger,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := h.validator.Struct(req); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			respondMessage(w, http.StatusBadRequest, "User already exists")
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: result.Token,
		User:  result.User,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := h.validator.Struct(req); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Unknown email and wrong password report the same message so the
		// response does not reveal which one failed.
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondMessage(w, http.StatusBadRequest, "Invalid credentials")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: result.Token,
		User:  result.User,
	})
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := h.validator.Struct(req); msg != "" {
		respondMessage(w, http.StatusBadRequest, msg)
		return
	}

	result, err := h.authUsecase.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidGoogleToken) {
			respondMessage(w, http.StatusUnauthorized, "Invalid Google token")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user with google")
		respondMessage(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Token: result.Token,
		User:  result.User,
	})
}
