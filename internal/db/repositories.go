package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Habits        *HabitRepository
	Reports       *ReportRepository
	Notifications *NotificationRepository
	MoodEntries   *MoodEntryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Habits:        NewHabitRepository(database),
		Reports:       NewReportRepository(database),
		Notifications: NewNotificationRepository(database),
		MoodEntries:   NewMoodEntryRepository(database),
	}
}
