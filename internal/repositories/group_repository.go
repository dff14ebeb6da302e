package repositories

import (
	"fmt"

	"cityscope-backend/internal/models"
	"gorm.io/gorm"
)

// ErrGroupNotFound is returned when the user has no group of that name.
var ErrGroupNotFound = fmt.Errorf("group not found")

// GroupRepository defines the interface for favorite-group operations
type GroupRepository interface {
	CreateGroup(group *models.FavoriteGroup) error
	GetGroup(username, name string) (*models.FavoriteGroup, error)
	GetGroupsByUsername(username string) ([]models.FavoriteGroup, error)
	DeleteGroup(username, name string) error
	AddCity(groupID uint, cityName string) error
	HasCity(groupID uint, cityName string) (bool, error)
}

// PostgresGroupRepository implements GroupRepository
type PostgresGroupRepository struct {
	db *gorm.DB
}

func NewPostgresGroupRepository(db *gorm.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

func (r *PostgresGroupRepository) CreateGroup(group *models.FavoriteGroup) error {
	return r.db.Create(group).Error
}

func (r *PostgresGroupRepository) GetGroup(username, name string) (*models.FavoriteGroup, error) {
	var group models.FavoriteGroup
	err := r.db.Preload("Cities", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("username = ? AND name = ?", username, name).First(&group).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresGroupRepository) GetGroupsByUsername(username string) ([]models.FavoriteGroup, error) {
	var groups []models.FavoriteGroup
	err := r.db.Preload("Cities", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Where("username = ?", username).Order("created_at ASC").Find(&groups).Error
	return groups, err
}

// DeleteGroup removes the group and its membership rows. The favorites table
// is untouched: memberships are records about the group, not about the cities.
func (r *PostgresGroupRepository) DeleteGroup(username, name string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var group models.FavoriteGroup
		if err := tx.Where("username = ? AND name = ?", username, name).First(&group).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrGroupNotFound
			}
			return err
		}
		if err := tx.Where("favorite_group_id = ?", group.ID).Delete(&models.GroupCity{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
}

func (r *PostgresGroupRepository) AddCity(groupID uint, cityName string) error {
	return r.db.Create(&models.GroupCity{FavoriteGroupID: groupID, CityName: cityName}).Error
}

func (r *PostgresGroupRepository) HasCity(groupID uint, cityName string) (bool, error) {
	var count int64
	err := r.db.Model(&models.GroupCity{}).
		Where("favorite_group_id = ? AND city_name = ?", groupID, cityName).
		Count(&count).Error
	return count > 0, err
}
