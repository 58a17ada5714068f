package handler

import "github.com/apiwat-s/screenscout-api/internal/model"

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type AuthResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

type AddFavoriteRequest struct {
	Movie model.MovieRef `json:"movie" validate:"required"`
}

type RemoveFavoriteRequest struct {
	MovieID int64 `json:"movieId" validate:"required"`
}

type AddSearchHistoryRequest struct {
	Query string `json:"query" validate:"required"`
}

type CacheMovieRequest struct {
	TMDBID int64          `json:"tmdbId" validate:"required"`
	Type   string         `json:"type"   validate:"required,oneof=movie tv"`
	Data   model.MovieRef `json:"data"   validate:"required"`
}
