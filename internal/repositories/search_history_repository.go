package repositories

import (
	"cityscope-backend/internal/models"
	"gorm.io/gorm"
)

// Searches beyond this count fall off the end of a user's history.
const searchHistoryLimit = 10

// SearchHistoryRepository defines the interface for search-history operations
type SearchHistoryRepository interface {
	GetHistory(username string) ([]string, error)
	AddEntry(username, cityName string) ([]string, error)
}

type postgresSearchHistoryRepository struct {
	db *gorm.DB
}

func NewPostgresSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &postgresSearchHistoryRepository{db: db}
}

// GetHistory returns the user's searches, most recent first.
func (r *postgresSearchHistoryRepository) GetHistory(username string) ([]string, error) {
	var entries []models.SearchEntry
	err := r.db.Where("username = ?", username).
		Order("created_at DESC").
		Limit(searchHistoryLimit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	history := make([]string, 0, len(entries))
	for _, e := range entries {
		history = append(history, e.CityName)
	}
	return history, nil
}

// AddEntry moves cityName to the front of the history, dropping any older
// entry for the same city and trimming the tail past the limit. Returns the
// updated history.
func (r *postgresSearchHistoryRepository) AddEntry(username, cityName string) ([]string, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ? AND city_name = ?", username, cityName).
			Delete(&models.SearchEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.SearchEntry{Username: username, CityName: cityName}).Error; err != nil {
			return err
		}

		var stale []models.SearchEntry
		if err := tx.Where("username = ?", username).
			Order("created_at DESC").
			Offset(searchHistoryLimit).
			Find(&stale).Error; err != nil {
			return err
		}
		for _, e := range stale {
			if err := tx.Delete(&e).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetHistory(username)
}
