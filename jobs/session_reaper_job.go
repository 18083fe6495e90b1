package jobs

import (
	"log"
	"time"

	"github.com/vraj2305/cancer_scanner/handlers"
)

const sessionMaxIdle = time.Hour

func ReapIdleQuizSessions() {
	log.Println("Running job: ReapIdleQuizSessions...")

	reaped := handlers.QuizSessions.ReapIdle(sessionMaxIdle)
	if reaped == 0 {
		return
	}
	log.Printf("Reaped %d idle quiz session(s).", reaped)
}
