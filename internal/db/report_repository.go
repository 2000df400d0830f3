package db

import (
	"unwind/internal/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	database *gorm.DB
}

func NewReportRepository(database *gorm.DB) *ReportRepository {
	return &ReportRepository{database: database}
}

func (repo *ReportRepository) FindByUserID(userID uint) (models.Report, error) {
	var report models.Report
	if err := repo.database.Where("user_id = ?", userID).First(&report).Error; err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (repo *ReportRepository) Create(report *models.Report) error {
	return repo.database.Create(report).Error
}

// ListAll feeds the periodic stress sweep, which visits every user that
// has a report row regardless of recent activity.
func (repo *ReportRepository) ListAll() ([]models.Report, error) {
	reports := make([]models.Report, 0)
	if err := repo.database.Order("user_id ASC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (repo *ReportRepository) UpdateCombinedReport(userID uint, combinedReport string) error {
	return repo.database.Model(&models.Report{}).
		Where("user_id = ?", userID).
		Update("combined_report", combinedReport).Error
}

func (repo *ReportRepository) UpdateStressDay(userID uint, stressDay int) error {
	return repo.database.Model(&models.Report{}).
		Where("user_id = ?", userID).
		Update("stress_day", stressDay).Error
}
