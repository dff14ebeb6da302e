package models

import "time"

// Comment is the thread aggregate stored in MongoDB: one document per
// comment with its reply list and like set embedded. Mutations replace
// the whole document so responses always carry a consistent aggregate.
type Comment struct {
	ID                string    `json:"id" bson:"_id"`
	CityName          string    `json:"cityName" bson:"city_name"`
	Username          string    `json:"username" bson:"username"`
	Comment           string    `json:"comment" bson:"comment"`
	ImageURL          string    `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	CreatedAt         time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updated_at"`
	LikesCount        int       `json:"likesCount" bson:"likes_count"`
	LikedByUsernames  []string  `json:"likedByUsernames" bson:"liked_by_usernames"`
	Replies           []Reply   `json:"replies" bson:"replies"`
	LikeSummary       string    `json:"likeSummary,omitempty" bson:"-"` // per-viewer projection, never persisted
}

// Reply is a single-level answer to a comment. Replies cannot be replied to.
type Reply struct {
	ID        string    `json:"id" bson:"_id"`
	Username  string    `json:"username" bson:"username"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// HasLike reports whether username is in the like set.
func (c *Comment) HasLike(username string) bool {
	for _, u := range c.LikedByUsernames {
		if u == username {
			return true
		}
	}
	return false
}

// CreateCommentRequest is the JSON part of the multipart add-comment request.
// The comment text may be empty only when an image file part is attached;
// that precondition is checked by the handler, not here.
type CreateCommentRequest struct {
	CityName string `json:"cityName" validate:"required"`
	Username string `json:"username" validate:"required"`
	Comment  string `json:"comment" validate:"max=500"`
}

// UpdateCommentRequest is the JSON part of the multipart edit-comment request.
type UpdateCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=500"`
}

// CreateReplyRequest defines the request body for replying to a comment.
type CreateReplyRequest struct {
	Username string `json:"username" validate:"required"`
	Text     string `json:"text" validate:"required,max=500"`
}

// LikeResult is the authoritative like state returned after a toggle.
type LikeResult struct {
	LikesCount       int      `json:"likesCount"`
	LikedByUsernames []string `json:"likedByUsernames"`
}
