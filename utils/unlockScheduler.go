package utils

import (
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeUnlockScheduler sets up the daily level-unlock notification sweep
func InitializeUnlockScheduler() {
	log.Println("[UNLOCK-SCHEDULER] Initializing unlock scheduler...")

	c := cron.New()

	// Run daily at 6 AM to announce levels that unlock today
	c.AddFunc("0 6 * * *", func() {
		log.Println("[UNLOCK-SCHEDULER] Running daily unlock sweep...")
		ProcessTodaysUnlocks()
	})

	c.Start()
	log.Println("[UNLOCK-SCHEDULER] Unlock scheduler started - runs daily at 6 AM")
}

// ProcessTodaysUnlocks fans out an "unlocked" notification to every student
// of each class whose level schedule falls within today.
func ProcessTodaysUnlocks() {
	db := database.Database.Db
	dayStart := now.BeginningOfDay()
	dayEnd := now.EndOfDay()

	var schedules []courseModels.LevelSchedule
	if err := db.
		Where("unlock_at BETWEEN ? AND ? AND is_deleted = ?", dayStart, dayEnd, false).
		Find(&schedules).Error; err != nil {
		log.Printf("[UNLOCK-SCHEDULER] Error fetching schedules: %v", err)
		return
	}

	log.Printf("[UNLOCK-SCHEDULER] Found %d levels unlocking today", len(schedules))

	for _, schedule := range schedules {
		var students []models.User
		if err := db.
			Where("role = ? AND class_level = ? AND is_deleted = ?", "STUDENT", schedule.ClassLevel, false).
			Find(&students).Error; err != nil {
			log.Printf("[UNLOCK-SCHEDULER] Error fetching students for class %s: %v", schedule.ClassLevel, err)
			continue
		}

		notification := models.Notification{
			Title:        "New Level Unlocked",
			Body:         "Level " + schedule.Level + " is now available for your class. Start learning today!",
			AudienceType: "CLASS",
			ClassLevel:   schedule.ClassLevel,
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("[UNLOCK-SCHEDULER] Error creating notification: %v", err)
			continue
		}

		recipients := make([]models.NotificationRecipient, 0, len(students))
		for _, student := range students {
			recipients = append(recipients, models.NotificationRecipient{
				NotificationID: notification.ID,
				UserID:         student.ID,
			})
		}
		if len(recipients) > 0 {
			if err := db.Create(&recipients).Error; err != nil {
				log.Printf("[UNLOCK-SCHEDULER] Error creating recipients: %v", err)
			}
		}

		for _, student := range students {
			SendLevelUnlockedEmail(student.Email, student.Name, schedule.ClassLevel, schedule.Level)
		}

		log.Printf("[UNLOCK-SCHEDULER] Notified %d students of class %s level %s", len(students), schedule.ClassLevel, schedule.Level)
	}
}
