package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Config represents a shared game configuration. It is the unit of
// exchange in GameSetupHub: a piece of setup content for a named game,
// plus the social metadata (likes, comments) and the history of prior
// content states accumulated over its lifetime.
type Config struct {
	// ID is the unique identifier of the configuration.
	ID primitive.ObjectID `json:"id" bson:"_id,omitempty"`

	// Game is the name of the game the configuration applies to.
	Game string `json:"game" bson:"game"`

	// Description is an optional free-text summary.
	Description string `json:"description" bson:"description"`

	// Content is the current configuration payload.
	Content string `json:"content" bson:"content"`

	// Tags are free-form labels used for filtering.
	Tags []string `json:"tags" bson:"tags"`

	// Author is a snapshot of the creating user, copied at creation
	// time. It is not a live reference: later username changes do not
	// propagate here.
	Author UserRef `json:"author" bson:"author"`

	// Likes is the like count. It always equals len(LikedBy).
	Likes int `json:"likes" bson:"likes"`

	// LikedBy holds the ids of users who liked the configuration.
	// Each user id appears at most once.
	LikedBy []string `json:"likedBy" bson:"likedBy"`

	// Comments is the append-only comment thread.
	Comments []Comment `json:"comments" bson:"comments"`

	// Versions is the append-only log of superseded content states.
	// The current content never appears here.
	Versions []Version `json:"versions" bson:"versions"`

	// CreatedAt is the timestamp when the configuration was created.
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`

	// UpdatedAt is the timestamp of the most recent mutation.
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// UserRef is a denormalized author reference embedded in a Config.
type UserRef struct {
	// ID is the hex form of the author's user id.
	ID string `json:"id" bson:"id"`

	// Username is the author's username at creation time.
	Username string `json:"username" bson:"username"`
}

// Comment is an append-only sub-record of a Config.
type Comment struct {
	// AuthorID is the hex id of the commenting user.
	AuthorID string `json:"authorId" bson:"authorId"`

	// AuthorName is the commenting user's name at comment time.
	AuthorName string `json:"authorName" bson:"authorName"`

	// Text is the comment body.
	Text string `json:"text" bson:"text"`

	// CreatedAt is the timestamp when the comment was added.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Version is a snapshot of a prior content state of a Config.
type Version struct {
	// Content is the superseded configuration payload.
	Content string `json:"content" bson:"content"`

	// CreatedAt is the timestamp when the snapshot was taken.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
