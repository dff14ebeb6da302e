package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"sort"
	"time"

	"cityscope-backend/internal/models"
	"cityscope-backend/internal/repositories"
	"cityscope-backend/pkg/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests for a city's comment thread: the
// comments themselves, their like sets and their single-level replies.
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
	uploader               storage.ImageUploader
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, notifRepo repositories.NotificationRepository, uploader storage.ImageUploader) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		notificationRepository: notifRepo,
		uploader:               uploader,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/comment/getId/:id", h.GetCommentByID)
	g.GET("/comment/:cityName", h.GetCommentsByCity)
	g.POST("/addcomment", h.CreateComment)
	g.PUT("/comment/:id", h.UpdateComment)
	g.DELETE("/comment/:id", h.DeleteComment)
	g.POST("/comment/:id/like", h.ToggleLike)
	g.POST("/comment/:id/reply", h.AddReply)
	g.DELETE("/comment/:id/reply/:replyId", h.DeleteReply)
}

// GetCommentsByCity returns a city's full thread in creation order. An empty
// thread is a valid thread: 200 with an empty list, never 404.
func (h *CommentHandler) GetCommentsByCity(c echo.Context) error {
	cityName := c.Param("cityName")
	viewer := usernameFromContext(c)

	comments, err := h.commentRepository.GetCommentsByCity(c.Request().Context(), cityName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for i := range comments {
		comments[i].LikeSummary = buildLikeSummary(comments[i].LikedByUsernames, viewer)
	}

	return c.JSON(http.StatusOK, comments)
}

// GetCommentByID resolves a single comment, used by deep links from the
// notification feed to anchor and highlight a comment.
func (h *CommentHandler) GetCommentByID(c echo.Context) error {
	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrCommentNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment.LikeSummary = buildLikeSummary(comment.LikedByUsernames, usernameFromContext(c))
	return c.JSON(http.StatusOK, comment)
}

// CreateComment creates a new comment on a city from a multipart request: a
// "data" JSON part plus an optional "file" image part. Text may be empty only
// when an image is attached.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := json.Unmarshal([]byte(c.FormValue("data")), &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := requireActor(c, req.Username)
	if err != nil {
		return err
	}

	file, _ := c.FormFile("file")
	if req.Comment == "" && file == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Comment text or image required")
	}

	imageURL := ""
	if file != nil {
		imageURL, err = h.uploadImage(c, file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	comment := &models.Comment{
		CityName: req.CityName,
		Username: actor,
		Comment:  req.Comment,
		ImageURL: imageURL,
	}

	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, comment)
}

// UpdateComment edits an existing comment's text and optionally replaces its
// image. Owner-only; the whole updated aggregate is returned.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actor, err := requireActor(c, "")
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrCommentNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.Username != actor {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this comment")
	}

	var req models.UpdateCommentRequest
	if err := json.Unmarshal([]byte(c.FormValue("data")), &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment.Comment = req.Comment
	comment.UpdatedAt = time.Now().UTC()

	if file, _ := c.FormFile("file"); file != nil {
		imageURL, err := h.uploadImage(c, file)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		comment.ImageURL = imageURL
	}

	if err := h.commentRepository.ReplaceComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and all of its replies. Owner-only.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, err := requireActor(c, "")
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrCommentNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.Username != actor {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this comment")
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleLike flips the acting user's membership in a comment's like set.
// Idempotent per user: two toggles restore the original state. The response
// carries the authoritative count and member list, which the client replaces
// its local copy with rather than incrementing.
func (h *CommentHandler) ToggleLike(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrCommentNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	liked := comment.HasLike(actor)
	if liked {
		kept := comment.LikedByUsernames[:0]
		for _, u := range comment.LikedByUsernames {
			if u != actor {
				kept = append(kept, u)
			}
		}
		comment.LikedByUsernames = kept
	} else {
		comment.LikedByUsernames = append(comment.LikedByUsernames, actor)
	}
	comment.LikesCount = len(comment.LikedByUsernames)

	if err := h.commentRepository.ReplaceComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !liked && comment.Username != actor {
		h.notifyOwner(comment, actor, models.NotificationTypeLike, "")
	}

	return c.JSON(http.StatusOK, models.LikeResult{
		LikesCount:       comment.LikesCount,
		LikedByUsernames: comment.LikedByUsernames,
	})
}

// AddReply appends a reply to a comment and returns the updated parent, so
// the client replaces the whole comment instead of splicing the reply in.
// Replies are single-level: a reply cannot be replied to.
func (h *CommentHandler) AddReply(c echo.Context) error {
	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	actor, err := requireActor(c, req.Username)
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrCommentNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reply := models.Reply{
		ID:        uuid.New().String(),
		Username:  actor,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	comment.Replies = append(comment.Replies, reply)

	if err := h.commentRepository.ReplaceComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if comment.Username != actor {
		h.notifyOwner(comment, actor, models.NotificationTypeReply, reply.ID)
	}

	return c.JSON(http.StatusCreated, comment)
}

// DeleteReply removes a reply from its parent comment and returns the updated
// parent. Only the reply's author may delete it.
func (h *CommentHandler) DeleteReply(c echo.Context) error {
	actor, err := requireActor(c, c.QueryParam("username"))
	if err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrCommentNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	replyID := c.Param("replyId")
	idx := -1
	for i, r := range comment.Replies {
		if r.ID == replyID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
	}
	if comment.Replies[idx].Username != actor {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this reply")
	}

	comment.Replies = append(comment.Replies[:idx], comment.Replies[idx+1:]...)

	if err := h.commentRepository.ReplaceComment(c.Request().Context(), comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) uploadImage(c echo.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	return h.uploader.Upload(c.Request().Context(), file.Filename, contentType, src)
}

// notifyOwner records an engagement notification for the comment's author.
// Best-effort: a failed write is logged, never surfaced to the engaging user.
func (h *CommentHandler) notifyOwner(comment *models.Comment, actor, notifType, replyID string) {
	var message string
	switch notifType {
	case models.NotificationTypeReply:
		message = fmt.Sprintf("%s replied to your comment", actor)
	case models.NotificationTypeLike:
		message = fmt.Sprintf("%s liked your comment", actor)
	default:
		message = fmt.Sprintf("%s engaged with your comment", actor)
	}

	notification := &models.Notification{
		Username:   comment.Username,
		Actor:      actor,
		Type:       notifType,
		Message:    message,
		TargetCity: comment.CityName,
		CommentID:  comment.ID,
		ReplyID:    replyID,
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("Failed to create %s notification for %s: %v", notifType, comment.Username, err)
	}
}

// buildLikeSummary renders the like-tooltip line for one viewer. The result
// is deterministic and independent of set iteration order: likers sort
// alphabetically, with the viewer pinned first as "you" when present, and at
// most three names shown before "and N others".
func buildLikeSummary(likers []string, viewer string) string {
	if len(likers) == 0 {
		return ""
	}

	names := make([]string, 0, len(likers))
	viewerLiked := false
	for _, u := range likers {
		if u == viewer && viewer != "" {
			viewerLiked = true
			continue
		}
		names = append(names, u)
	}
	sort.Strings(names)

	if viewerLiked {
		if len(names) == 0 {
			return "you"
		}
		if len(names) == 1 {
			return "you and 1 other"
		}
		return fmt.Sprintf("you and %d others", len(names))
	}

	if len(names) <= 3 {
		summary := names[0]
		for _, n := range names[1:] {
			summary += ", " + n
		}
		return summary
	}

	rest := len(names) - 3
	return fmt.Sprintf("%s, %s, %s and %d others", names[0], names[1], names[2], rest)
}
