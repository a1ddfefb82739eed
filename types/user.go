package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system.
// It contains identity, profile, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" bson:"username"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" bson:"password"`

	// Profile holds the user's optional public profile fields.
	Profile Profile `json:"profile" bson:"profile"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// Profile is the public, user-editable part of an account.
type Profile struct {
	// DisplayName is the name shown alongside the user's content.
	DisplayName string `json:"displayName,omitempty" bson:"displayName,omitempty"`

	// Bio is a free-form biography.
	Bio string `json:"bio,omitempty" bson:"bio,omitempty"`
}

// PublicUser is the projection of a User returned to other users.
type PublicUser struct {
	ID        primitive.ObjectID `json:"id"`
	Username  string             `json:"username"`
	Profile   Profile            `json:"profile"`
	CreatedAt time.Time          `json:"created_at"`
}

// Public returns the externally visible projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Profile:   u.Profile,
		CreatedAt: u.CreatedAt,
	}
}
