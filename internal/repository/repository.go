// Package repository persists users and cached movie metadata. The MongoDB
// implementations translate driver errors into the package sentinels so the
// usecase layer stays storage-agnostic.
package repository

import (
	"context"
	"errors"

	"github.com/apiwat-s/screenscout-api/internal/model"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrDuplicate is returned when a unique field collides with an
	// existing document.
	ErrDuplicate = errors.New("duplicate document")
)

// UserRepository defines the user-related database operations.
//
// The list mutations are single atomic updates on the storage side: a
// concurrent AddFavorite for the same movie cannot produce a duplicate entry,
// and AddSearchEntry prepends and truncates in one write.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// AddFavorite appends the movie unless an entry with the same id is
	// already present, and returns the updated list.
	AddFavorite(ctx context.Context, userID string, movie model.MovieRef) ([]model.MovieRef, error)

	// RemoveFavorite drops every favorite with the given movie id and
	// returns the updated list. Removing an absent id is a no-op.
	RemoveFavorite(ctx context.Context, userID string, movieID int64) ([]model.MovieRef, error)

	// AddSearchEntry prepends the query to the user's search history,
	// keeping at most the 20 most recent entries.
	AddSearchEntry(ctx context.Context, userID string, query string) ([]string, error)
}

// MovieRepository defines the cached movie metadata operations.
type MovieRepository interface {
	UpsertMovie(ctx context.Context, movie *model.CachedMovie) (*model.CachedMovie, error)
	GetMovie(ctx context.Context, mediaType string, tmdbID int64) (*model.CachedMovie, error)
}

// searchHistoryLimit caps the per-user search history length.
const searchHistoryLimit = 20
