package scheduler

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"alcofree-bot/internal/storage"
)

const userID = int64(7)

type fakeSender struct {
	mu    sync.Mutex
	sent  []string
	fails int
}

func (f *fakeSender) SendReminder(_ int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails > 0 {
		f.fails--
		return errors.New("telegram unavailable")
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.sent...)
}

func testScheduler(t *testing.T, at time.Time) (*Scheduler, *storage.DB, *fakeSender) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sender := &fakeSender{}
	return New(db, sender, clockwork.NewFakeClockAt(at)), db, sender
}

func seedReminderUser(t *testing.T, db *storage.DB, morning, evening string) {
	t.Helper()
	_, err := db.GetOrCreate(userID)
	require.NoError(t, err)
	require.NoError(t, db.Update(userID, map[string]any{
		"morning_time": morning,
		"evening_time": evening,
	}))
}

func markers(t *testing.T, db *storage.DB) (morning, evening *time.Time) {
	t.Helper()
	u, err := db.Get(userID)
	require.NoError(t, err)
	return u.LastMorningSentDate, u.LastEveningSentDate
}

func TestMorningReminderAtMatchingMinute(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 30, 0, time.UTC)
	s, db, sender := testScheduler(t, now)
	seedReminderUser(t, db, "08:00", "21:00")
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Update(userID, map[string]any{"sober_since_date": since}))

	s.tick()

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	require.True(t, strings.HasPrefix(msgs[0], "Доброе утро! 🟢"))
	require.Contains(t, msgs[0], "Ты не пьёшь с 01.06.2025")

	morning, evening := markers(t, db)
	require.NotNil(t, morning)
	require.Equal(t, "2025-06-15", morning.Format("2006-01-02"))
	require.Nil(t, evening)
}

func TestEveningReminder(t *testing.T) {
	now := time.Date(2025, 6, 15, 21, 0, 5, 0, time.UTC)
	s, db, sender := testScheduler(t, now)
	seedReminderUser(t, db, "08:00", "21:00")

	s.tick()

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "Добрый вечер! 🌙", msgs[0])

	morning, evening := markers(t, db)
	require.Nil(t, morning)
	require.NotNil(t, evening)
}

func TestNoSendAtNonMatchingMinute(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 1, 0, 0, time.UTC)
	s, db, sender := testScheduler(t, now)
	seedReminderUser(t, db, "08:00", "21:00")

	s.tick()

	require.Empty(t, sender.messages())
	morning, evening := markers(t, db)
	require.Nil(t, morning)
	require.Nil(t, evening)
}

func TestAtMostOnceAcrossTicksInSameMinute(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 10, 0, time.UTC)
	s, db, sender := testScheduler(t, now)
	seedReminderUser(t, db, "08:00", "")

	// Several ticks land in the same minute; the persisted marker keeps
	// delivery down to one.
	s.tick()
	s.tick()
	s.tick()

	require.Len(t, sender.messages(), 1)
}

func TestAtMostOnceUnderOverlappingTicks(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 10, 0, time.UTC)
	s, db, sender := testScheduler(t, now)
	seedReminderUser(t, db, "08:00", "")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.tick()
		}()
	}
	wg.Wait()

	require.Len(t, sender.messages(), 1)
	morning, _ := markers(t, db)
	require.NotNil(t, morning)
}

func TestFailedSendLeavesMarkerUnsetAndRetries(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 10, 0, time.UTC)
	s, db, sender := testScheduler(t, now)
	seedReminderUser(t, db, "08:00", "")
	sender.fails = 1

	s.tick()
	require.Empty(t, sender.messages())
	morning, _ := markers(t, db)
	require.Nil(t, morning)

	// Next tick in the same minute retries and succeeds.
	s.tick()
	require.Len(t, sender.messages(), 1)
	morning, _ = markers(t, db)
	require.NotNil(t, morning)
}

func TestStaleMarkerFromPreviousDayDoesNotBlock(t *testing.T) {
	now := time.Date(2025, 6, 15, 8, 0, 10, 0, time.UTC)
	s, db, sender := testScheduler(t, now)
	seedReminderUser(t, db, "08:00", "")
	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Update(userID, map[string]any{
		"last_morning_sent_date": yesterday,
	}))

	s.tick()

	require.Len(t, sender.messages(), 1)
}
