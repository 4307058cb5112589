// Package monitoring hosts the background maintenance loops.
package monitoring

import (
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/affirmly/affirmly-be/internal/media"
)

// MediaSweeper periodically removes stored media files that no profile row
// references anymore, e.g. files left behind by a crash between upload and
// database write.
type MediaSweeper struct {
	db       *sql.DB
	store    *media.Store
	schedule cron.Schedule
	nextRun  time.Time
	ticker   *time.Ticker
	done     chan bool
}

// NewMediaSweeper creates a sweeper from a standard cron expression.
func NewMediaSweeper(db *sql.DB, store *media.Store, cronExpr string) (*MediaSweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &MediaSweeper{
		db:       db,
		store:    store,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop. The loop wakes every minute and
// sweeps when the cron schedule has fired since the last check.
func (s *MediaSweeper) Run() {
	log.Info().Msg("Starting background media sweeper...")
	s.nextRun = s.schedule.Next(time.Now())
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping background media sweeper.")
			return
		case now := <-s.ticker.C:
			if now.Before(s.nextRun) {
				continue
			}
			s.nextRun = s.schedule.Next(now)
			if err := s.Sweep(); err != nil {
				log.Error().Err(err).Msg("Media sweep failed")
			}
		}
	}
}

// Stop halts the sweeper.
func (s *MediaSweeper) Stop() {
	s.done <- true
}

// Sweep removes every stored file that no profile references.
func (s *MediaSweeper) Sweep() error {
	referenced, err := s.referencedImages()
	if err != nil {
		return err
	}

	stored, err := s.store.List()
	if err != nil {
		return err
	}

	removed := 0
	for _, name := range stored {
		if referenced[name] {
			continue
		}
		if err := s.store.Remove(name); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("Failed to remove orphaned media file")
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("Swept orphaned media files")
	}
	return nil
}

func (s *MediaSweeper) referencedImages() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT image FROM profiles")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	referenced := make(map[string]bool)
	for rows.Next() {
		var image string
		if err := rows.Scan(&image); err != nil {
			return nil, err
		}
		referenced[image] = true
	}
	return referenced, rows.Err()
}
