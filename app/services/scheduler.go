package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background keep-alive ticker. The hosting
// platform idles cold instances; a periodic heartbeat plus a cheap DB ping
// keeps the pool warm for the night shifts.
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if err := db.Ping(); err != nil {
				log.Printf("Keep-alive DB ping failed: %v", err)
				continue
			}
			log.Println("Keep-alive ping - server staying warm")
		}
	}()
}
