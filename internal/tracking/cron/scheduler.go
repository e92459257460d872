package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/harwoodcarpentry/tracker-backend/internal/tracking/service"
)

// Scheduler runs periodic maintenance tasks. Currently one job: a nightly
// log line summarizing project counts per status, for the shop's morning
// check-in.
type Scheduler struct {
	svc *service.ProjectService
	c   *cron.Cron
}

func NewScheduler(svc *service.ProjectService) *Scheduler {
	return &Scheduler{svc: svc}
}

// Start registers the jobs and begins the schedule.
func (s *Scheduler) Start() {
	s.c = cron.New()

	// nightly at midnight
	_, err := s.c.AddFunc("0 0 * * *", s.logStatusSummary)
	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (status summary nightly at 12:00AM)")
	s.c.Start()
}

// Stop halts the schedule; running jobs finish.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

func (s *Scheduler) logStatusSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := s.svc.CountByStatus(ctx)
	if err != nil {
		log.Printf("[cron] status summary failed: %v", err)
		return
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	log.Printf("[cron] project status summary: total=%d by_status=%v", total, counts)
}
