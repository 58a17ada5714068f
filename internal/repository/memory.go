package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/apiwat-s/screenscout-api/internal/model"
)

// memoryUserRepository is a mutex-guarded in-memory UserRepository with the
// same semantics as the MongoDB implementation. It backs the unit tests and
// serves as the executable contract for the interface.
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *memoryUserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, ErrDuplicate
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Favorites == nil {
		user.Favorites = []model.MovieRef{}
	}
	if user.SearchHistory == nil {
		user.SearchHistory = []string{}
	}

	stored := cloneUser(user)
	r.users[user.ID.Hex()] = stored

	return cloneUser(stored), nil
}

func (r *memoryUserRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	return cloneUser(user), nil
}

func (r *memoryUserRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}

	return nil, ErrNotFound
}

func (r *memoryUserRepository) AddFavorite(
	_ context.Context,
	userID string,
	movie model.MovieRef,
) ([]model.MovieRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	for _, fav := range user.Favorites {
		if fav.ID == movie.ID {
			return append([]model.MovieRef{}, user.Favorites...), nil
		}
	}

	user.Favorites = append(user.Favorites, movie)
	user.UpdatedAt = time.Now()

	return append([]model.MovieRef{}, user.Favorites...), nil
}

func (r *memoryUserRepository) RemoveFavorite(
	_ context.Context,
	userID string,
	movieID int64,
) ([]model.MovieRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	kept := user.Favorites[:0]
	for _, fav := range user.Favorites {
		if fav.ID != movieID {
			kept = append(kept, fav)
		}
	}
	user.Favorites = kept
	user.UpdatedAt = time.Now()

	return append([]model.MovieRef{}, user.Favorites...), nil
}

func (r *memoryUserRepository) AddSearchEntry(
	_ context.Context,
	userID string,
	query string,
) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	history := append([]string{query}, user.SearchHistory...)
	if len(history) > searchHistoryLimit {
		history = history[:searchHistoryLimit]
	}
	user.SearchHistory = history
	user.UpdatedAt = time.Now()

	return append([]string{}, user.SearchHistory...), nil
}

func cloneUser(u *model.User) *model.User {
	clone := *u
	clone.Favorites = append([]model.MovieRef{}, u.Favorites...)
	clone.SearchHistory = append([]string{}, u.SearchHistory...)

	return &clone
}

// memoryMovieRepository is the in-memory MovieRepository counterpart.
type memoryMovieRepository struct {
	mu     sync.Mutex
	movies map[movieKey]*model.CachedMovie
}

type movieKey struct {
	mediaType string
	tmdbID    int64
}

// NewMemoryMovieRepository creates an empty in-memory movie repository.
func NewMemoryMovieRepository() MovieRepository {
	return &memoryMovieRepository{
		movies: make(map[movieKey]*model.CachedMovie),
	}
}

func (r *memoryMovieRepository) UpsertMovie(
	_ context.Context,
	movie *model.CachedMovie,
) (*model.CachedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := movieKey{mediaType: movie.Type, tmdbID: movie.TMDBID}

	stored, ok := r.movies[key]
	if !ok {
		stored = &model.CachedMovie{
			ID:     bson.NewObjectID(),
			TMDBID: movie.TMDBID,
			Type:   movie.Type,
		}
		r.movies[key] = stored
	}

	stored.Data = movie.Data
	stored.UpdatedAt = time.Now()

	clone := *stored

	return &clone, nil
}

func (r *memoryMovieRepository) GetMovie(
	_ context.Context,
	mediaType string,
	tmdbID int64,
) (*model.CachedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.movies[movieKey{mediaType: mediaType, tmdbID: tmdbID}]
	if !ok {
		return nil, ErrNotFound
	}

	clone := *stored

	return &clone, nil
}
