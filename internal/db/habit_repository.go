package db

import (
	"errors"

	"unwind/internal/models"

	"gorm.io/gorm"
)

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

func (repo *HabitRepository) FindByUserID(userID uint) (models.HabitProfile, error) {
	var profile models.HabitProfile
	if err := repo.database.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return models.HabitProfile{}, err
	}
	return profile, nil
}

func (repo *HabitRepository) ExistsByUserID(userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.HabitProfile{}).
		Where("user_id = ?", userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Upsert keeps one profile row per user: repeated submissions replace the
// answers in place instead of stacking history.
func (repo *HabitRepository) Upsert(profile *models.HabitProfile) error {
	var existing models.HabitProfile
	err := repo.database.Where("user_id = ?", profile.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.database.Create(profile).Error
	}
	if err != nil {
		return err
	}

	profile.ID = existing.ID
	profile.CreatedAt = existing.CreatedAt
	return repo.database.Save(profile).Error
}
