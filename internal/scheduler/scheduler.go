// Package scheduler delivers the twice-daily reminder messages. A fixed-rate
// job compares each profile's reminder times against the wall clock and uses
// persisted per-day markers to guarantee at-most-once delivery.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"

	"alcofree-bot/internal/metrics"
	"alcofree-bot/internal/models"
	"alcofree-bot/internal/stats"
)

// Reminder latency is bounded by the tick interval.
const tickInterval = 10 * time.Second

// Sender emits one reminder message; the telegram bot implements it.
type Sender interface {
	SendReminder(userID int64, text string) error
}

// Store is the slice of the record store the scheduler needs.
type Store interface {
	ListWithReminders() ([]models.UserProfile, error)
	Get(userID int64) (*models.UserProfile, error)
	Update(userID int64, fields map[string]any) error
	WithUserLock(userID int64, fn func() error) error
}

type Scheduler struct {
	store  Store
	sender Sender
	clock  clockwork.Clock
}

func New(store Store, sender Sender, clock clockwork.Clock) *Scheduler {
	return &Scheduler{store: store, sender: sender, clock: clock}
}

// Start registers the tick job and runs the scheduler in the background.
func Start(store Store, sender Sender) (gocron.Scheduler, error) {
	sched := New(store, sender, clockwork.NewRealClock())

	s, err := gocron.NewScheduler(gocron.WithClock(sched.clock))
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DurationJob(tickInterval),
		gocron.NewTask(sched.tick),
	)
	if err != nil {
		return nil, err
	}
	s.Start()
	return s, nil
}

// tick reads the clock once and checks every profile with reminders set.
// Safe to run overlapping with itself or with message handling: each user is
// processed under the per-user lock with a fresh re-read of the markers.
func (s *Scheduler) tick() {
	now := s.clock.Now()
	hhmm := now.Format("15:04")
	today := now.Format("2006-01-02")

	users, err := s.store.ListWithReminders()
	if err != nil {
		log.Println("scheduler: list users:", err)
		return
	}

	for _, u := range users {
		if err := s.process(u.UserID, hhmm, today, now); err != nil {
			log.Printf("scheduler: user %d: %v", u.UserID, err)
		}
	}
}

func (s *Scheduler) process(userID int64, hhmm, today string, now time.Time) error {
	return s.store.WithUserLock(userID, func() error {
		// Re-read under the lock so an overlapping tick that already
		// delivered is visible here.
		u, err := s.store.Get(userID)
		if err != nil {
			return err
		}

		if u.MorningTime == hhmm && markerDate(u.LastMorningSentDate) != today {
			if err := s.deliver(u, "Доброе утро! 🟢", "morning", now); err != nil {
				return err
			}
		}
		if u.EveningTime == hhmm && markerDate(u.LastEveningSentDate) != today {
			if err := s.deliver(u, "Добрый вечер! 🌙", "evening", now); err != nil {
				return err
			}
		}
		return nil
	})
}

// deliver emits the send directive first and persists the marker only after
// the send succeeded, so a failed send is retried on the next matching tick.
func (s *Scheduler) deliver(u *models.UserProfile, greeting, kind string, now time.Time) error {
	text := greeting
	if sober := stats.SoberText(u, now); sober != "" {
		text += "\n" + sober
	}
	if err := s.sender.SendReminder(u.UserID, text); err != nil {
		return err
	}
	metrics.RemindersSent.WithLabelValues(kind).Inc()
	return s.store.Update(u.UserID, map[string]any{"last_" + kind + "_sent_date": now})
}

func markerDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
