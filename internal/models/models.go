package models

import "time"

// ConvState is the single conversation state of a user. Empty string means
// the user is idle and the next message is interpreted as a menu action.
type ConvState string

const (
	StateIdle                      ConvState = ""
	StateAwaitingSoberSince        ConvState = "sober_since"
	StateAwaitingWeeklySpend       ConvState = "weekly_spend"
	StateAwaitingWeeklyHours       ConvState = "weekly_hours"
	StateAwaitingMorningTime       ConvState = "morning_time"
	StateAwaitingEveningTime       ConvState = "evening_time"
	StateAwaitingCravingNumber     ConvState = "craving_number"
	StateAwaitingDiaryEntry        ConvState = "diary_entry"
	StateAwaitingGoalAdd           ConvState = "goal_add"
	StateAwaitingReasonAdd         ConvState = "reason_add"
	StateAwaitingTriggers          ConvState = "triggers"
	StateAwaitingGoalAndMotivation ConvState = "goal_motivation"
)

// Event types written to the append-only log.
const (
	EventSoberDay = "sober_day"
	EventCraving  = "craving"
	EventDiary    = "diary"
	EventRelapse  = "relapse"
)

// GoalUnset is the default goal sentinel.
const GoalUnset = "не задана"

// UserProfile is one row per telegram user.
type UserProfile struct {
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`

	Streak         int        `db:"streak"`
	LastSoberDate  *time.Time `db:"last_sober_date"`  // calendar date
	SoberSinceDate *time.Time `db:"sober_since_date"` // calendar date

	Goal       string `db:"goal"`
	Motivation string `db:"motivation"`

	WeeklyAlcoholSpend *float64 `db:"weekly_alcohol_spend"`
	WeeklyAlcoholHours *float64 `db:"weekly_alcohol_hours"`

	MorningTime         string     `db:"morning_time"` // "HH:MM", empty -> disabled
	EveningTime         string     `db:"evening_time"`
	LastMorningSentDate *time.Time `db:"last_morning_sent_date"`
	LastEveningSentDate *time.Time `db:"last_evening_sent_date"`

	OnboardingCompleted bool      `db:"onboarding_completed"`
	State               ConvState `db:"conv_state"`

	Goals    []string `db:"goals"`
	Reasons  []string `db:"reasons"`
	Triggers []string `db:"triggers"`
}

// Event is an immutable log record. Payload shape depends on the event type:
// {"level": n} for craving, {"text": s} for diary, {"date": d} for sober_day.
type Event struct {
	ID        string         `db:"id"`
	UserID    int64          `db:"user_id"`
	CreatedAt time.Time      `db:"created_at"`
	Type      string         `db:"event_type"`
	Payload   map[string]any `db:"payload"`
}

// Menu tells the transport layer which keyboard to attach to a reply.
type Menu int

const (
	MenuNone Menu = iota
	MenuIntro
	MenuMain
	MenuSettings
	MenuDiary
	MenuGoals
	MenuReasons
	MenuCravingScale
	MenuCravingMethods
)

// Reply is the outbound directive produced by the state machine.
type Reply struct {
	Text string
	Menu Menu
}
