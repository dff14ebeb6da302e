package models

import "time"

// Favorite is a user-scoped bookmark of a city. One row per (username, city);
// the unique index makes re-adding a no-op at the handler level.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"index;uniqueIndex:idx_user_city_fav"`
	CityName  string    `json:"city_name" gorm:"uniqueIndex:idx_user_city_fav"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFavoriteRequest defines the request body for bookmarking a city.
type AddFavoriteRequest struct {
	CityName string `json:"cityName" validate:"required"`
	Username string `json:"username" validate:"required"`
}
