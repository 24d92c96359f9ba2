// Package jobs schedules the background maintenance work.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/harakki/comics-server/internal/config"
	"github.com/harakki/comics-server/internal/media"
)

// Start launches the background job scheduler. Jobs run in singleton
// mode so a slow run never overlaps the next tick.
func Start(cfg *config.Config, mediaSvc *media.Service) *gocron.Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	startMediaCleanupJob(s, cfg, mediaSvc)

	log.Println("Starting background job scheduler...")
	s.StartAsync()
	return s
}

func startMediaCleanupJob(s *gocron.Scheduler, cfg *config.Config, mediaSvc *media.Service) {
	interval := cfg.Media.CleanupInterval
	if interval == 0 {
		log.Println("Media cleanup interval is 0, orphan cleanup is disabled.")
		return
	}

	log.Printf("Scheduling job: 'media-cleanup' to run every %d minutes.", interval)
	maxAge := time.Duration(interval) * time.Minute

	_, err := s.Every(interval).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		n, err := mediaSvc.CleanupStale(ctx, maxAge)
		if err != nil {
			log.Printf("Media cleanup failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("Media cleanup removed %d orphaned upload(s).", n)
		}
	})
	if err != nil {
		log.Printf("Error scheduling 'media-cleanup' job: %v", err)
	}
}
