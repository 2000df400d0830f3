package db

import (
	"unwind/internal/models"

	"gorm.io/gorm"
)

type MoodEntryRepository struct {
	database *gorm.DB
}

func NewMoodEntryRepository(database *gorm.DB) *MoodEntryRepository {
	return &MoodEntryRepository{database: database}
}

func (repo *MoodEntryRepository) Create(entry *models.MoodEntry) error {
	return repo.database.Create(entry).Error
}
