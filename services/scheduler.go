package services

import (
	"academy/database"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[OTP-CLEANUP %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartOTPCleanupScheduler purges dead unverified codes every hour
func StartOTPCleanupScheduler() {
	c := cron.New()

	job := func() {
		purged, err := NewOTPService(database.Database.Db).PurgeExpired()
		if err != nil {
			logScheduler("Error purging expired OTP codes: " + err.Error())
			return
		}
		if purged > 0 {
			logScheduler("Purged expired OTP codes")
		}
	}

	if _, err := c.AddFunc("@hourly", job); err != nil {
		logScheduler("Failed to register cleanup job: " + err.Error())
		return
	}

	c.Start()
	logScheduler("OTP cleanup scheduler started")
}
