// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartPipelineSweep watches for registrants whose ticket pipeline stalled
// between the upload and the email send (e.g. a crash mid-request). Stuck
// rows are logged for operator attention; the sweep never re-sends email
// on its own — that stays behind the explicit resend action.
func (s *TicketService) StartPipelineSweep() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-10 * time.Minute)
			stuck, err := s.Registrants.PendingTickets(cutoff)
			if err != nil {
				log.Printf("[Sweep] DB error: %v", err)
				return
			}
			for _, r := range stuck {
				log.Printf("[Sweep] ticket uploaded but not emailed for %s (%s) since %s — use resend",
					r.UID, r.Name, r.UpdatedAt.Format(time.RFC3339))
			}
		}),
	)
}
