package models

import "time"

// SearchEntry is one row of a user's city search history. The history is
// most-recent-first, deduplicated by city, and capped by the repository.
type SearchEntry struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Username  string    `json:"-" gorm:"index;uniqueIndex:idx_user_search_city"`
	CityName  string    `json:"city_name" gorm:"uniqueIndex:idx_user_search_city"`
	CreatedAt time.Time `json:"-" gorm:"index"`
}

// PopularCity is an aggregate row for the most-bookmarked cities, decorated
// with thread stats so the client can render a teaser card.
type PopularCity struct {
	CityName          string `json:"cityName"`
	FavoritesCount    int64  `json:"favoritesCount"`
	CommentsCount     int64  `json:"commentsCount"`
	FirstCommentPhoto string `json:"firstCommentPhoto,omitempty"`
}
