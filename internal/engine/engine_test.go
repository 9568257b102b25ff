package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"alcofree-bot/internal/models"
	"alcofree-bot/internal/storage"
)

const userID = int64(100)

func testEngine(t *testing.T) (*Engine, *storage.DB) {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	e := New(db)
	e.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return e, db
}

func onboarded(t *testing.T, db *storage.DB) {
	t.Helper()
	_, err := db.GetOrCreate(userID)
	require.NoError(t, err)
	require.NoError(t, db.Update(userID, map[string]any{"onboarding_completed": true}))
}

func state(t *testing.T, db *storage.DB) models.ConvState {
	t.Helper()
	u, err := db.Get(userID)
	require.NoError(t, err)
	return u.State
}

func profile(t *testing.T, db *storage.DB) *models.UserProfile {
	t.Helper()
	u, err := db.Get(userID)
	require.NoError(t, err)
	return u
}

// ---------- onboarding ------------------------------------------------------

func TestStartBeforeOnboarding(t *testing.T) {
	e, db := testEngine(t)

	r, err := e.HandleText(userID, "/start")
	require.NoError(t, err)
	require.Equal(t, models.MenuIntro, r.Menu)
	require.Equal(t, models.StateIdle, state(t, db))
}

func TestOnboardingFlow(t *testing.T) {
	e, db := testEngine(t)

	r, err := e.HandleText(userID, BtnStartJourney)
	require.NoError(t, err)
	require.Contains(t, r.Text, "ДД.ММ.ГГГГ")
	require.Equal(t, models.StateAwaitingSoberSince, state(t, db))

	// Invalid date re-prompts without a state change.
	r, err = e.HandleText(userID, "2025-01-01")
	require.NoError(t, err)
	require.Equal(t, textBadDate, r.Text)
	require.Equal(t, models.StateAwaitingSoberSince, state(t, db))

	r, err = e.HandleText(userID, "01.06.2025")
	require.NoError(t, err)
	require.Equal(t, textAskSpend, r.Text)
	require.Equal(t, models.StateAwaitingWeeklySpend, state(t, db))

	// Comma decimals are accepted.
	r, err = e.HandleText(userID, "не знаю")
	require.NoError(t, err)
	require.Equal(t, textBadSpend, r.Text)
	r, err = e.HandleText(userID, "3000,50")
	require.NoError(t, err)
	require.Equal(t, textAskHours, r.Text)

	r, err = e.HandleText(userID, "5.5")
	require.NoError(t, err)
	// First pass chains straight into reminder setup.
	require.Equal(t, textAskMorning, r.Text)
	require.Equal(t, models.StateAwaitingMorningTime, state(t, db))

	r, err = e.HandleText(userID, "invalid")
	require.NoError(t, err)
	require.Equal(t, textBadTime, r.Text)

	r, err = e.HandleText(userID, "08:00")
	require.NoError(t, err)
	require.Equal(t, textAskEvening, r.Text)
	require.Equal(t, models.StateAwaitingEveningTime, state(t, db))

	r, err = e.HandleText(userID, "21:30")
	require.NoError(t, err)
	require.Equal(t, textRemindersOn, r.Text)
	require.Equal(t, models.MenuMain, r.Menu)

	u := profile(t, db)
	require.True(t, u.OnboardingCompleted)
	require.Equal(t, models.StateIdle, u.State)
	require.Equal(t, "08:00", u.MorningTime)
	require.Equal(t, "21:30", u.EveningTime)
	require.NotNil(t, u.SoberSinceDate)
	require.InDelta(t, 3000.50, *u.WeeklyAlcoholSpend, 0.001)
	require.InDelta(t, 5.5, *u.WeeklyAlcoholHours, 0.001)
}

func TestReminderOffWordCompletesOnboarding(t *testing.T) {
	e, db := testEngine(t)
	_, err := db.GetOrCreate(userID)
	require.NoError(t, err)
	require.NoError(t, db.Update(userID, map[string]any{
		"conv_state": models.StateAwaitingMorningTime,
	}))

	r, err := e.HandleText(userID, "Выключить")
	require.NoError(t, err)
	require.Equal(t, textRemindersOff, r.Text)
	require.Equal(t, models.MenuMain, r.Menu)

	u := profile(t, db)
	require.True(t, u.OnboardingCompleted)
	require.Equal(t, models.StateIdle, u.State)
	require.Empty(t, u.MorningTime)
	require.Empty(t, u.EveningTime)
}

func TestTrackerReconfigureSkipsReminderChain(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnSetupTracker)
	require.NoError(t, err)
	_, err = e.HandleText(userID, "01.06.2025")
	require.NoError(t, err)
	_, err = e.HandleText(userID, "1000")
	require.NoError(t, err)

	r, err := e.HandleText(userID, "4")
	require.NoError(t, err)
	require.Equal(t, textTrackerDone, r.Text)
	require.Equal(t, models.MenuSettings, r.Menu)
	require.Equal(t, models.StateIdle, state(t, db))
}

// ---------- single-marker invariant -----------------------------------------

func TestEnteringFlowReplacesAwaitingMarker(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnCraving)
	require.NoError(t, err)
	require.Equal(t, models.StateAwaitingCravingNumber, state(t, db))

	_, err = e.HandleText(userID, BtnDiaryAdd)
	require.NoError(t, err)
	require.Equal(t, models.StateAwaitingDiaryEntry, state(t, db))

	_, err = e.HandleText(userID, BtnGoalAdd)
	require.NoError(t, err)
	require.Equal(t, models.StateAwaitingGoalAdd, state(t, db))
}

// ---------- daily check-in --------------------------------------------------

func TestCheckInStartsStreak(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	r, err := e.HandleText(userID, BtnCheckIn)
	require.NoError(t, err)
	require.Contains(t, r.Text, "Серия трезвых дней: 1")

	u := profile(t, db)
	require.Equal(t, 1, u.Streak)
	require.NotNil(t, u.LastSoberDate)

	counts, err := db.CountEventsByType(userID)
	require.NoError(t, err)
	require.Equal(t, 1, counts[models.EventSoberDay])
}

func TestCheckInIdempotentSameDay(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnCheckIn)
	require.NoError(t, err)
	r, err := e.HandleText(userID, BtnCheckIn)
	require.NoError(t, err)
	require.Equal(t, textAlreadySober, r.Text)

	u := profile(t, db)
	require.Equal(t, 1, u.Streak)

	counts, err := db.CountEventsByType(userID)
	require.NoError(t, err)
	require.Equal(t, 1, counts[models.EventSoberDay])
}

func TestCheckInContinuesStreakFromYesterday(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)
	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Update(userID, map[string]any{
		"last_sober_date": yesterday, "streak": 3,
	}))

	r, err := e.HandleText(userID, BtnCheckIn)
	require.NoError(t, err)
	require.Contains(t, r.Text, "Серия трезвых дней: 4")
	require.Equal(t, 4, profile(t, db).Streak)
}

func TestCheckInResetsStreakAfterGap(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)
	old := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Update(userID, map[string]any{
		"last_sober_date": old, "streak": 9,
	}))

	r, err := e.HandleText(userID, BtnCheckIn)
	require.NoError(t, err)
	require.Contains(t, r.Text, "Серия трезвых дней: 1")
	require.Equal(t, 1, profile(t, db).Streak)
}

// ---------- craving ---------------------------------------------------------

func TestCravingTiers(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	cases := []struct {
		input string
		text  string
	}{
		{"2", textCravingMild},
		{"5", textCravingMid},
		{"10", textCravingHigh},
	}
	for _, tc := range cases {
		_, err := e.HandleText(userID, BtnCraving)
		require.NoError(t, err)

		r, err := e.HandleText(userID, tc.input)
		require.NoError(t, err)
		require.Equal(t, tc.text, r.Text)
		require.Equal(t, models.MenuCravingMethods, r.Menu)
		require.Equal(t, models.StateIdle, state(t, db))
	}

	counts, err := db.CountEventsByType(userID)
	require.NoError(t, err)
	require.Equal(t, 3, counts[models.EventCraving])
}

func TestCravingRejectsBadInput(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnCraving)
	require.NoError(t, err)

	for _, bad := range []string{"abc", "-1", "11"} {
		r, err := e.HandleText(userID, bad)
		require.NoError(t, err)
		require.Equal(t, textBadCraving, r.Text)
		require.Equal(t, models.StateAwaitingCravingNumber, state(t, db))
	}
}

func TestCravingScaleAction(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnCraving)
	require.NoError(t, err)

	r, err := e.HandleAction(userID, ActionCravingScale+"9")
	require.NoError(t, err)
	require.Contains(t, r.Text, "9/10")
	require.Equal(t, models.MenuCravingMethods, r.Menu)
	require.Equal(t, models.StateIdle, state(t, db))

	latest, err := db.LatestEvent(userID, models.EventCraving)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.EqualValues(t, 9, latest.Payload["level"])
}

func TestCravingMethodAction(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	r, err := e.HandleAction(userID, ActionCravingMethod+"breath")
	require.NoError(t, err)
	require.Contains(t, r.Text, "4–7–8")
	require.Equal(t, models.MenuCravingMethods, r.Menu)
}

// ---------- diary / goals / reasons / triggers ------------------------------

func TestDiaryAddListClear(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnDiaryAdd)
	require.NoError(t, err)
	r, err := e.HandleText(userID, "тяжёлый день, но держусь")
	require.NoError(t, err)
	require.Equal(t, textDiarySaved, r.Text)
	require.Equal(t, models.StateIdle, state(t, db))

	r, err = e.HandleText(userID, BtnDiary)
	require.NoError(t, err)
	require.Contains(t, r.Text, "тяжёлый день, но держусь")
	require.Equal(t, models.MenuDiary, r.Menu)

	// Clearing the diary leaves other event types alone.
	require.NoError(t, db.AppendEvent(userID, models.EventCraving, map[string]any{"level": 3}))
	r, err = e.HandleText(userID, BtnDiaryClear)
	require.NoError(t, err)
	require.Equal(t, textDiaryCleared, r.Text)

	counts, err := db.CountEventsByType(userID)
	require.NoError(t, err)
	require.Zero(t, counts[models.EventDiary])
	require.Equal(t, 1, counts[models.EventCraving])
}

func TestGoalsAppendOnly(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	for _, g := range []string{"спорт", "сон"} {
		_, err := e.HandleText(userID, BtnGoalAdd)
		require.NoError(t, err)
		r, err := e.HandleText(userID, g)
		require.NoError(t, err)
		require.Equal(t, textGoalAdded, r.Text)
	}
	require.Equal(t, []string{"спорт", "сон"}, profile(t, db).Goals)

	r, err := e.HandleText(userID, BtnGoalsClear)
	require.NoError(t, err)
	require.Equal(t, textGoalsCleared, r.Text)
	require.Empty(t, profile(t, db).Goals)
}

func TestReasonsAppendOnly(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnReasonAdd)
	require.NoError(t, err)
	_, err = e.HandleText(userID, "семья")
	require.NoError(t, err)
	require.Equal(t, []string{"семья"}, profile(t, db).Reasons)

	_, err = e.HandleText(userID, BtnReasonsClear)
	require.NoError(t, err)
	require.Empty(t, profile(t, db).Reasons)
}

func TestTriggersReplaceWholeList(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)
	require.NoError(t, db.Update(userID, map[string]any{
		"triggers": []string{"старый", "список"},
	}))

	_, err := e.HandleText(userID, BtnTriggers)
	require.NoError(t, err)
	r, err := e.HandleText(userID, " пятница ,  , бар,стресс ")
	require.NoError(t, err)
	require.Equal(t, textTriggersSet, r.Text)
	require.Equal(t, []string{"пятница", "бар", "стресс"}, profile(t, db).Triggers)
}

func TestGoalAndMotivation(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)

	_, err := e.HandleText(userID, BtnGoalMotivation)
	require.NoError(t, err)
	require.Equal(t, models.StateAwaitingGoalAndMotivation, state(t, db))

	_, err = e.HandleText(userID, "Год без алкоголя\nХочу быть здоровым")
	require.NoError(t, err)

	u := profile(t, db)
	require.Equal(t, "Год без алкоголя", u.Goal)
	require.Equal(t, "Хочу быть здоровым", u.Motivation)
}

// ---------- cancel ----------------------------------------------------------

func TestCancelWordReturnsToIdle(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)
	require.NoError(t, db.Update(userID, map[string]any{
		"goals": []string{"старая цель"},
	}))

	awaiting := []models.ConvState{
		models.StateAwaitingSoberSince,
		models.StateAwaitingWeeklySpend,
		models.StateAwaitingWeeklyHours,
		models.StateAwaitingMorningTime,
		models.StateAwaitingEveningTime,
		models.StateAwaitingCravingNumber,
		models.StateAwaitingDiaryEntry,
		models.StateAwaitingGoalAdd,
		models.StateAwaitingReasonAdd,
		models.StateAwaitingTriggers,
		models.StateAwaitingGoalAndMotivation,
	}
	for i, st := range awaiting {
		require.NoError(t, db.Update(userID, map[string]any{"conv_state": st}))

		word := []string{"отмена", "ОТМЕНА", "cancel", "стоп"}[i%4]
		r, err := e.HandleText(userID, word)
		require.NoError(t, err)
		require.Equal(t, models.StateIdle, state(t, db))
		require.Equal(t, models.MenuMain, r.Menu)
	}

	// Cancelling never touches anything but the awaiting marker.
	require.Equal(t, []string{"старая цель"}, profile(t, db).Goals)
}

// ---------- relapse ---------------------------------------------------------

func TestRelapseFullReset(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Update(userID, map[string]any{
		"streak":               7,
		"last_sober_date":      since,
		"sober_since_date":     since,
		"weekly_alcohol_spend": 3000.0,
		"weekly_alcohol_hours": 10.0,
		"morning_time":         "08:00",
		"evening_time":         "21:00",
		"motivation":           "семья",
		"goals":                []string{"g"},
		"reasons":              []string{"r"},
		"triggers":             []string{"t"},
	}))
	require.NoError(t, db.AppendEvent(userID, models.EventSoberDay, nil))
	require.NoError(t, db.AppendEvent(userID, models.EventDiary, map[string]any{"text": "x"}))

	r, err := e.HandleText(userID, BtnRelapse)
	require.NoError(t, err)
	// Stats as they stood are reported before the wipe, plus the old streak.
	require.Contains(t, r.Text, "Ты не пьёшь с 01.06.2025")
	require.Contains(t, r.Text, "Предыдущая серия: 7 дней.")
	require.Equal(t, models.MenuIntro, r.Menu)

	u := profile(t, db)
	require.Equal(t, 0, u.Streak)
	require.Nil(t, u.SoberSinceDate)
	require.Nil(t, u.LastSoberDate)
	require.Nil(t, u.WeeklyAlcoholSpend)
	require.Nil(t, u.WeeklyAlcoholHours)
	require.Empty(t, u.MorningTime)
	require.Empty(t, u.EveningTime)
	require.Empty(t, u.Goals)
	require.Empty(t, u.Reasons)
	require.Empty(t, u.Triggers)
	require.Empty(t, u.Motivation)
	require.False(t, u.OnboardingCompleted)

	counts, err := db.CountEventsByType(userID)
	require.NoError(t, err)
	require.Empty(t, counts)
}

// ---------- idle fallback ---------------------------------------------------

func TestIdleFallback(t *testing.T) {
	e, db := testEngine(t)

	r, err := e.HandleText(userID, "привет")
	require.NoError(t, err)
	require.Equal(t, textIdleOnboard, r.Text)
	require.Equal(t, models.MenuIntro, r.Menu)

	onboarded(t, db)
	r, err = e.HandleText(userID, "привет")
	require.NoError(t, err)
	require.Equal(t, textUseMenu, r.Text)
	require.Equal(t, models.MenuMain, r.Menu)
}

func TestGatedActionsBeforeOnboarding(t *testing.T) {
	e, db := testEngine(t)
	_, err := db.GetOrCreate(userID)
	require.NoError(t, err)

	for _, btn := range []string{BtnCraving, BtnStats, BtnRelapse, BtnDiary, BtnSettings} {
		r, err := e.HandleText(userID, btn)
		require.NoError(t, err)
		require.Equal(t, textFinishSetup, r.Text)
		require.Equal(t, models.MenuIntro, r.Menu)
	}
}

func TestStatsText(t *testing.T) {
	e, db := testEngine(t)
	onboarded(t, db)
	since := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Update(userID, map[string]any{
		"sober_since_date": since, "streak": 7,
	}))
	require.NoError(t, db.AppendEvent(userID, models.EventSoberDay, nil))

	r, err := e.HandleText(userID, BtnStats)
	require.NoError(t, err)
	require.Contains(t, r.Text, "Ты не пьёшь с 09.06.2025 (7 дней).")
	require.Contains(t, r.Text, "⭐")
	require.Contains(t, r.Text, "Серия ежедневных отметок: 7 дней.")
	require.Contains(t, r.Text, "Трезвых дней отмечено: 1")
}
