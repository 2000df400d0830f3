package db

import (
	"unwind/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

func (repo *NotificationRepository) Create(event *models.NotificationEvent) error {
	return repo.database.Create(event).Error
}

// FindLatestByUserAndType returns the most recent event of one type for one
// user. Cooldown checks compare against this row only, so an old level_1
// never blocks a fresh level_2.
func (repo *NotificationRepository) FindLatestByUserAndType(userID uint, notificationType string) (models.NotificationEvent, error) {
	var event models.NotificationEvent
	if err := repo.database.
		Where("user_id = ? AND notification_type = ?", userID, notificationType).
		Order("sent_at DESC, id DESC").
		First(&event).Error; err != nil {
		return models.NotificationEvent{}, err
	}
	return event, nil
}

func (repo *NotificationRepository) ListRecentByUser(userID uint, limit int) ([]models.NotificationEvent, error) {
	events := make([]models.NotificationEvent, 0)
	query := repo.database.
		Where("user_id = ?", userID).
		Order("sent_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
