package usecase

import (
	"context"
	"errors"

	"github.com/apiwat-s/screenscout-api/internal/model"
	"github.com/apiwat-s/screenscout-api/internal/repository"
)

// ErrMovieNotFound is returned when no cached metadata exists for the
// requested title.
var ErrMovieNotFound = errors.New("movie not found")

// MovieUsecase caches movie metadata documents keyed by TMDB id and media
// type, so repeated lookups do not have to go back to the metadata provider.
type MovieUsecase interface {
	CacheMovie(ctx context.Context, movie *model.CachedMovie) (*model.CachedMovie, error)
	GetMovie(ctx context.Context, mediaType string, tmdbID int64) (*model.CachedMovie, error)
}

type movieUsecase struct {
	movieRepo repository.MovieRepository
}

// NewMovieUsecase constructs the MovieUsecase.
func NewMovieUsecase(movieRepo repository.MovieRepository) MovieUsecase {
	return &movieUsecase{movieRepo: movieRepo}
}

func (u *movieUsecase) CacheMovie(ctx context.Context, movie *model.CachedMovie) (*model.CachedMovie, error) {
	return u.movieRepo.UpsertMovie(ctx, movie)
}

func (u *movieUsecase) GetMovie(
	ctx context.Context,
	mediaType string,
	tmdbID int64,
) (*model.CachedMovie, error) {
	movie, err := u.movieRepo.GetMovie(ctx, mediaType, tmdbID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieNotFound
		}

		return nil, err
	}

	return movie, nil
}
