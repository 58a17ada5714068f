package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. PasswordHash never leaves the server;
// it is excluded from every JSON rendering of the record.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"   json:"id"`
	Username      string        `bson:"username"        json:"username"`
	Email         string        `bson:"email"           json:"email"`
	PasswordHash  string        `bson:"password_hash"   json:"-"`
	Favorites     []MovieRef    `bson:"favorites"       json:"favorites"`
	SearchHistory []string      `bson:"search_history"  json:"searchHistory"`
	CreatedAt     time.Time     `bson:"created_at"      json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at"      json:"-"`
}

// PublicUser is the view of a user returned by the auth endpoints.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the public view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}
}
