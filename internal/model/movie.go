package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MovieRef is the movie reference stored in a user's favorites list. The shape
// mirrors the TMDB summary object the frontend works with; only the id is
// mandatory, and unknown shapes are rejected at the transport boundary.
type MovieRef struct {
	ID               int64    `bson:"id"                          json:"id"                          validate:"required"`
	Title            string   `bson:"title,omitempty"             json:"title,omitempty"`
	MediaType        string   `bson:"media_type,omitempty"        json:"media_type,omitempty"        validate:"omitempty,oneof=movie tv"`
	PosterPath       string   `bson:"poster_path,omitempty"       json:"poster_path,omitempty"`
	ReleaseDate      string   `bson:"release_date,omitempty"      json:"release_date,omitempty"`
	VoteAverage      float64  `bson:"vote_average,omitempty"      json:"vote_average,omitempty"`
	OriginalLanguage string   `bson:"original_language,omitempty" json:"original_language,omitempty"`
	Overview         string   `bson:"overview,omitempty"          json:"overview,omitempty"`
	GenreIDs         []int64  `bson:"genre_ids,omitempty"         json:"genre_ids,omitempty"`
	Genres           []string `bson:"genres,omitempty"            json:"genres,omitempty"`
	Runtime          int64    `bson:"runtime,omitempty"           json:"runtime,omitempty"`
}

// CachedMovie is one cached metadata document, keyed by TMDB id and media type.
type CachedMovie struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"-"`
	TMDBID    int64         `bson:"tmdb_id"       json:"tmdbId"    validate:"required"`
	Type      string        `bson:"type"          json:"type"      validate:"required,oneof=movie tv"`
	Data      MovieRef      `bson:"data"          json:"data"      validate:"required"`
	UpdatedAt time.Time     `bson:"updated_at"    json:"updatedAt"`
}
