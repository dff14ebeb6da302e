package repositories

import (
	"fmt"

	"cityscope-backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteRepository defines the interface for favorite-city operations
type FavoriteRepository interface {
	AddFavorite(favorite *models.Favorite) error
	RemoveFavorite(username, cityName string) error
	IsFavorite(username, cityName string) (bool, error)
	GetFavoritesByUsername(username string) ([]models.Favorite, error)
	CountByCity() (map[string]int64, error)
}

// PostgresFavoriteRepository implements FavoriteRepository
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

func (r *PostgresFavoriteRepository) AddFavorite(favorite *models.Favorite) error {
	return r.db.Create(favorite).Error
}

func (r *PostgresFavoriteRepository) RemoveFavorite(username, cityName string) error {
	res := r.db.Where("username = ? AND city_name = ?", username, cityName).Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("favorite not found")
	}
	return nil
}

func (r *PostgresFavoriteRepository) IsFavorite(username, cityName string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Favorite{}).Where("username = ? AND city_name = ?", username, cityName).Count(&count).Error
	return count > 0, err
}

// GetFavoritesByUsername returns the user's favorites in insertion order so
// the display stays stable across fetches.
func (r *PostgresFavoriteRepository) GetFavoritesByUsername(username string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Where("username = ?", username).Order("created_at ASC").Find(&favorites).Error
	return favorites, err
}

// CountByCity returns how many users bookmarked each city.
func (r *PostgresFavoriteRepository) CountByCity() (map[string]int64, error) {
	type row struct {
		CityName string
		Total    int64
	}
	var rows []row
	err := r.db.Model(&models.Favorite{}).
		Select("city_name, count(*) as total").
		Group("city_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.CityName] = rw.Total
	}
	return counts, nil
}
