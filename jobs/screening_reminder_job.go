package jobs

import (
	"log"
	"time"

	"github.com/vraj2305/cancer_scanner/database"
	"github.com/vraj2305/cancer_scanner/models"
	"github.com/vraj2305/cancer_scanner/notifications"
)

const screeningInterval = 90 * 24 * time.Hour

// SendScreeningReminders emails users whose most recent scan is older than
// the screening interval. A user is reminded at most once per interval.
func SendScreeningReminders() {
	log.Println("Running job: SendScreeningReminders...")

	cutoff := time.Now().Add(-screeningInterval)

	var dueUsers []models.User
	err := database.DB.
		Where("is_active = ?", true).
		Where("screening_reminder_sent_at IS NULL OR screening_reminder_sent_at < ?", cutoff).
		Where("id IN (?)", database.DB.
			Model(&models.ScanResult{}).
			Select("user_id").
			Group("user_id").
			Having("MAX(timestamp) < ?", cutoff)).
		Find(&dueUsers).Error
	if err != nil {
		log.Printf("Error checking for overdue screenings: %v", err)
		return
	}

	if len(dueUsers) == 0 {
		log.Println("No overdue screenings found.")
		return
	}

	now := time.Now()
	for _, user := range dueUsers {
		log.Printf("Sending screening reminder to user ID: %s", user.ID)

		emailSubject := "Time for Your Next Screening"
		emailBody := "<h1>Screening Reminder</h1><p>Hi there,</p><p>It has been over 90 days since your last scan. Regular screening is the best way to catch changes early.</p><p>Log in to upload a new scan or retake the risk assessment quiz.</p>"

		go notifications.SendEmail(user.FullName, user.Email, emailSubject, emailBody)

		sentAt := now
		user.ScreeningReminderSentAt = &sentAt
		database.DB.Save(&user)
	}

	log.Printf("Sent %d screening reminder(s).", len(dueUsers))
}
