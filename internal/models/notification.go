package models

import "time"

// Notification types emitted when another user engages with owned content.
const (
	NotificationTypeLike  = "LIKE"
	NotificationTypeReply = "REPLY"
)

// Notification tells a user that someone engaged with one of their comments.
// TargetCity and CommentID form the deep link the client scrolls to; IsRead
// transitions false -> true exactly once and never reverts.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"index"` // recipient
	Actor      string    `json:"actor"`
	Type       string    `json:"type" gorm:"size:20"`
	Message    string    `json:"message"`
	TargetCity string    `json:"targetCity"`
	CommentID  string    `json:"commentId"`
	ReplyID    string    `json:"replyId,omitempty"`
	IsRead     bool      `json:"read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
}
