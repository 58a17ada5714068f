package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/apiwat-s/screenscout-api/internal/model"
)

const movieCollection = "movies"

type movieMongoRepository struct {
	db *mongo.Database
}

// NewMovieMongoRepository creates the MongoDB-backed cached movie repository.
// Cached documents are unique per (tmdb_id, type) pair.
func NewMovieMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) MovieRepository {
	collection := db.Collection(movieCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tmdb_id", Value: 1},
				{Key: "type", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create movie indexes")
	}

	return &movieMongoRepository{db: db}
}

func (r *movieMongoRepository) UpsertMovie(
	ctx context.Context,
	movie *model.CachedMovie,
) (*model.CachedMovie, error) {
	result := r.db.Collection(movieCollection).FindOneAndUpdate(
		ctx,
		bson.M{
			"tmdb_id": movie.TMDBID,
			"type":    movie.Type,
		},
		bson.M{
			"$set": bson.M{
				"data":       movie.Data,
				"updated_at": time.Now(),
			},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	)

	var stored model.CachedMovie
	if err := result.Decode(&stored); err != nil {
		return nil, err
	}

	return &stored, nil
}

func (r *movieMongoRepository) GetMovie(
	ctx context.Context,
	mediaType string,
	tmdbID int64,
) (*model.CachedMovie, error) {
	result := r.db.Collection(movieCollection).FindOne(ctx, bson.M{
		"tmdb_id": tmdbID,
		"type":    mediaType,
	})

	var movie model.CachedMovie
	if err := result.Decode(&movie); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &movie, nil
}
