package db

import (
	"gorm.io/gorm"

	"unwind/internal/models"
)

// UserRepository reads and writes account rows. Email lookups go through the
// lower(trim(email)) expression so they stay aligned with the unique index
// created by the schema migrations.
type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByNormalizedEmail expects an address already lowercased and trimmed by
// the auth input policy. At most one row can match, so no ordering is applied.
func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.
		Where("lower(trim(email)) = ?", email).
		Take(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	ids := make([]uint, 0, 1)
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdatePasswordHash(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}
