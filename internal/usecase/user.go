package usecase

import (
	"context"
	"errors"

	"github.com/apiwat-s/screenscout-api/internal/model"
	"github.com/apiwat-s/screenscout-api/internal/repository"
)

// ErrUserNotFound is returned when the authenticated user's id no longer
// resolves to a stored record.
var ErrUserNotFound = errors.New("user not found")

// UserUsecase defines the per-user profile, favorites, and search-history
// operations. Every call requires an identity already resolved by the
// session middleware.
type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	GetFavorites(ctx context.Context, userID string) ([]model.MovieRef, error)
	AddFavorite(ctx context.Context, userID string, movie model.MovieRef) ([]model.MovieRef, error)
	RemoveFavorite(ctx context.Context, userID string, movieID int64) ([]model.MovieRef, error)
	GetSearchHistory(ctx context.Context, userID string) ([]string, error)
	AddSearchQuery(ctx context.Context, userID string, query string) ([]string, error)
}

type userUsecase struct {
	userRepo repository.UserRepository
}

// NewUserUsecase constructs the UserUsecase.
func NewUserUsecase(userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return user, nil
}

func (u *userUsecase) GetFavorites(ctx context.Context, userID string) ([]model.MovieRef, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if user.Favorites == nil {
		return []model.MovieRef{}, nil
	}

	return user.Favorites, nil
}

// AddFavorite is idempotent: adding a movie whose id is already present
// leaves the list unchanged.
func (u *userUsecase) AddFavorite(
	ctx context.Context,
	userID string,
	movie model.MovieRef,
) ([]model.MovieRef, error) {
	favorites, err := u.userRepo.AddFavorite(ctx, userID, movie)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return favorites, nil
}

func (u *userUsecase) RemoveFavorite(
	ctx context.Context,
	userID string,
	movieID int64,
) ([]model.MovieRef, error) {
	favorites, err := u.userRepo.RemoveFavorite(ctx, userID, movieID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return favorites, nil
}

func (u *userUsecase) GetSearchHistory(ctx context.Context, userID string) ([]string, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err)
	}

	if user.SearchHistory == nil {
		return []string{}, nil
	}

	return user.SearchHistory, nil
}

func (u *userUsecase) AddSearchQuery(ctx context.Context, userID string, query string) ([]string, error) {
	history, err := u.userRepo.AddSearchEntry(ctx, userID, query)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return history, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}

	return err
}
