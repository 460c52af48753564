package worker

import (
	"context"
	"log"
	"time"

	"client_portal/internal/domain/repository"
)

// SessionReaper periodically deletes expired session rows. Expired
// sessions are already invisible to Find, so the reaper is purely about
// keeping the table from growing without bound.
type SessionReaper struct {
	sessionRepo repository.SessionRepository
	interval    time.Duration
}

func NewSessionReaper(sessionRepo repository.SessionRepository, interval time.Duration) *SessionReaper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionReaper{sessionRepo: sessionRepo, interval: interval}
}

func (r *SessionReaper) Start(ctx context.Context) {
	log.Printf("Session reaper started, interval %s", r.interval)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session reaper stopping...")
			return
		case <-ticker.C:
			deleted, err := r.sessionRepo.DeleteExpired(ctx)
			if err != nil {
				log.Printf("ERROR: session reaper: %v", err)
				continue
			}
			if deleted > 0 {
				log.Printf("Session reaper removed %d expired sessions", deleted)
			}
		}
	}
}
