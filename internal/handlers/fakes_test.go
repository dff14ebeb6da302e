package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cityscope-backend/internal/models"
	"cityscope-backend/internal/repositories"
	"github.com/google/uuid"
)

// In-memory fakes of the repository interfaces so handler tests run without
// MongoDB, PostgreSQL or S3.

type fakeCommentRepo struct {
	comments map[string]*models.Comment
	order    []string
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[string]*models.Comment{}}
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	now := time.Now().UTC()
	comment.ID = uuid.New().String()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.LikedByUsernames == nil {
		comment.LikedByUsernames = []string{}
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	stored := *comment
	r.comments[comment.ID] = &stored
	r.order = append(r.order, comment.ID)
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(_ context.Context, id string) (*models.Comment, error) {
	stored, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	clone := *stored
	clone.LikedByUsernames = append([]string{}, stored.LikedByUsernames...)
	clone.Replies = append([]models.Reply{}, stored.Replies...)
	return &clone, nil
}

func (r *fakeCommentRepo) GetCommentsByCity(_ context.Context, cityName string) ([]models.Comment, error) {
	comments := []models.Comment{}
	for _, id := range r.order {
		c := r.comments[id]
		if strings.EqualFold(c.CityName, cityName) {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (r *fakeCommentRepo) ReplaceComment(_ context.Context, comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return repositories.ErrCommentNotFound
	}
	stored := *comment
	r.comments[comment.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) DeleteComment(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return repositories.ErrCommentNotFound
	}
	delete(r.comments, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeCommentRepo) CountCommentsByCity(_ context.Context, cityName string) (int64, error) {
	var count int64
	for _, c := range r.comments {
		if strings.EqualFold(c.CityName, cityName) {
			count++
		}
	}
	return count, nil
}

func (r *fakeCommentRepo) GetFirstImageByCity(_ context.Context, cityName string) (string, error) {
	for _, id := range r.order {
		c := r.comments[id]
		if strings.EqualFold(c.CityName, cityName) && c.ImageURL != "" {
			return c.ImageURL, nil
		}
	}
	return "", nil
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	nextID        uint
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now().UTC()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) GetByUsername(username string) ([]models.Notification, error) {
	out := []models.Notification{}
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].Username == username {
			out = append(out, *r.notifications[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(username string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.Username == username && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkAsRead(id uint) error {
	for _, n := range r.notifications {
		if n.ID == id {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(username string) error {
	for _, n := range r.notifications {
		if n.Username == username {
			n.IsRead = true
		}
	}
	return nil
}

type fakeFavoriteRepo struct {
	favorites []*models.Favorite
	nextID    uint
}

func (r *fakeFavoriteRepo) AddFavorite(f *models.Favorite) error {
	r.nextID++
	f.ID = r.nextID
	f.CreatedAt = time.Now().UTC()
	r.favorites = append(r.favorites, f)
	return nil
}

func (r *fakeFavoriteRepo) RemoveFavorite(username, cityName string) error {
	for i, f := range r.favorites {
		if f.Username == username && f.CityName == cityName {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("favorite not found")
}

func (r *fakeFavoriteRepo) IsFavorite(username, cityName string) (bool, error) {
	for _, f := range r.favorites {
		if f.Username == username && f.CityName == cityName {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) GetFavoritesByUsername(username string) ([]models.Favorite, error) {
	out := []models.Favorite{}
	for _, f := range r.favorites {
		if f.Username == username {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFavoriteRepo) CountByCity() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, f := range r.favorites {
		counts[f.CityName]++
	}
	return counts, nil
}

type fakeGroupRepo struct {
	groups []*models.FavoriteGroup
	nextID uint
}

func (r *fakeGroupRepo) CreateGroup(g *models.FavoriteGroup) error {
	r.nextID++
	g.ID = r.nextID
	g.CreatedAt = time.Now().UTC()
	r.groups = append(r.groups, g)
	return nil
}

func (r *fakeGroupRepo) GetGroup(username, name string) (*models.FavoriteGroup, error) {
	for _, g := range r.groups {
		if g.Username == username && g.Name == name {
			clone := *g
			return &clone, nil
		}
	}
	return nil, repositories.ErrGroupNotFound
}

func (r *fakeGroupRepo) GetGroupsByUsername(username string) ([]models.FavoriteGroup, error) {
	out := []models.FavoriteGroup{}
	for _, g := range r.groups {
		if g.Username == username {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) DeleteGroup(username, name string) error {
	for i, g := range r.groups {
		if g.Username == username && g.Name == name {
			r.groups = append(r.groups[:i], r.groups[i+1:]...)
			return nil
		}
	}
	return repositories.ErrGroupNotFound
}

func (r *fakeGroupRepo) AddCity(groupID uint, cityName string) error {
	for _, g := range r.groups {
		if g.ID == groupID {
			g.Cities = append(g.Cities, models.GroupCity{FavoriteGroupID: groupID, CityName: cityName})
			return nil
		}
	}
	return repositories.ErrGroupNotFound
}

func (r *fakeGroupRepo) HasCity(groupID uint, cityName string) (bool, error) {
	for _, g := range r.groups {
		if g.ID == groupID {
			for _, c := range g.Cities {
				if c.CityName == cityName {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

type fakeSearchHistoryRepo struct {
	histories map[string][]string
}

func newFakeSearchHistoryRepo() *fakeSearchHistoryRepo {
	return &fakeSearchHistoryRepo{histories: map[string][]string{}}
}

func (r *fakeSearchHistoryRepo) GetHistory(username string) ([]string, error) {
	history := r.histories[username]
	if history == nil {
		history = []string{}
	}
	return history, nil
}

func (r *fakeSearchHistoryRepo) AddEntry(username, cityName string) ([]string, error) {
	history := []string{cityName}
	for _, c := range r.histories[username] {
		if c != cityName {
			history = append(history, c)
		}
	}
	if len(history) > 10 {
		history = history[:10]
	}
	r.histories[username] = history
	return history, nil
}

type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) Upload(_ context.Context, filename, _ string, body io.Reader) (string, error) {
	if _, err := io.ReadAll(body); err != nil {
		return "", err
	}
	u.uploads++
	return "https://images.test/" + filename, nil
}
