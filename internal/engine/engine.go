// Package engine implements the conversation state machine. It is
// transport-free: one inbound text or button action maps to one outbound
// reply directive, with all profile mutations going through the store.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"alcofree-bot/internal/models"
	"alcofree-bot/internal/stats"
)

const (
	inputDateLayout = "02.01.2006"
	timeLayout      = "15:04"
)

// Store is the record-store contract the engine depends on. *storage.DB
// satisfies it; tests may substitute their own.
type Store interface {
	GetOrCreate(userID int64) (*models.UserProfile, error)
	Update(userID int64, fields map[string]any) error
	ResetProgress(userID int64) error
	ResetTracker(userID int64) error
	ResetReminders(userID int64) error
	AppendEvent(userID int64, eventType string, payload map[string]any) error
	CountEventsByType(userID int64) (map[string]int, error)
	LatestEvent(userID int64, eventType string) (*models.Event, error)
	ListRecent(userID int64, eventType string, limit int) ([]models.Event, error)
	DeleteEvents(userID int64, eventType string) error
	WithUserLock(userID int64, fn func() error) error
}

type Engine struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// HandleText interprets one inbound message for the user. The whole
// transition runs under the per-user lock, so concurrent messages and
// scheduler ticks never interleave a read-modify-write.
func (e *Engine) HandleText(userID int64, text string) (models.Reply, error) {
	var reply models.Reply
	err := e.store.WithUserLock(userID, func() error {
		u, err := e.store.GetOrCreate(userID)
		if err != nil {
			return err
		}
		reply, err = e.dispatch(u, strings.TrimSpace(text))
		return err
	})
	return reply, err
}

// HandleAction interprets a button action (inline keyboard callback).
func (e *Engine) HandleAction(userID int64, action string) (models.Reply, error) {
	var reply models.Reply
	err := e.store.WithUserLock(userID, func() error {
		u, err := e.store.GetOrCreate(userID)
		if err != nil {
			return err
		}
		reply, err = e.action(u, action)
		return err
	})
	return reply, err
}

// ---------- dispatch --------------------------------------------------------

func (e *Engine) dispatch(u *models.UserProfile, text string) (models.Reply, error) {
	// Menu buttons take priority over awaiting input: pressing one leaves
	// the current flow and enters the new one (at most one marker stays set).
	if reply, handled, err := e.menuAction(u, text); handled {
		return reply, err
	}

	if u.State != models.StateIdle {
		return e.handleAwaiting(u, text)
	}

	if !u.OnboardingCompleted {
		return models.Reply{Text: textIdleOnboard, Menu: models.MenuIntro}, nil
	}
	return models.Reply{Text: textUseMenu, Menu: models.MenuMain}, nil
}

func (e *Engine) menuAction(u *models.UserProfile, text string) (models.Reply, bool, error) {
	handled := func(r models.Reply, err error) (models.Reply, bool, error) { return r, true, err }

	switch text {
	case "/start":
		return handled(e.start(u))
	case BtnStartJourney:
		return handled(e.enterFlow(u, models.StateAwaitingSoberSince,
			map[string]any{"onboarding_completed": false},
			models.Reply{Text: "Начнём. " + textAskSoberSince}))
	case BtnSetupTracker:
		return handled(e.enterFlow(u, models.StateAwaitingSoberSince, nil,
			models.Reply{Text: textAskSoberSince}))
	case BtnSetupReminders:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.enterFlow(u, models.StateAwaitingMorningTime, nil,
			models.Reply{Text: textAskMorning}))
	case BtnCraving:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.enterFlow(u, models.StateAwaitingCravingNumber, nil,
			models.Reply{Text: textAskCraving, Menu: models.MenuCravingScale}))
	case BtnStats, "/stats":
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		txt, err := e.statsText(u)
		return handled(models.Reply{Text: txt, Menu: models.MenuMain}, err)
	case BtnCheckIn:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.checkIn(u))
	case BtnRelapse:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.relapse(u))
	case BtnSettings:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		if err := e.clearState(u); err != nil {
			return handled(models.Reply{}, err)
		}
		return handled(models.Reply{
			Text: "Текущие настройки:\n" + settingsText(u),
			Menu: models.MenuSettings,
		}, nil)
	case BtnMainMenu:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		if err := e.clearState(u); err != nil {
			return handled(models.Reply{}, err)
		}
		return handled(models.Reply{Text: textBackToMain, Menu: models.MenuMain}, nil)
	case BtnGoalMotivation:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.enterFlow(u, models.StateAwaitingGoalAndMotivation, nil,
			models.Reply{Text: textAskGoalMotiv}))
	case BtnTriggers:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		prefix := ""
		if len(u.Triggers) > 0 {
			prefix = "Сейчас: " + strings.Join(u.Triggers, ", ") + "\n\n"
		}
		return handled(e.enterFlow(u, models.StateAwaitingTriggers, nil, models.Reply{
			Text: prefix + "Пришли список триггеров через запятую (заменю список целиком).\nЧтобы отменить, отправь «отмена».",
		}))
	case BtnDiary:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.diaryMenu(u))
	case BtnDiaryAdd:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.enterFlow(u, models.StateAwaitingDiaryEntry, nil,
			models.Reply{Text: textAskDiary}))
	case BtnDiaryClear:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		if err := e.clearState(u); err != nil {
			return handled(models.Reply{}, err)
		}
		if err := e.store.DeleteEvents(u.UserID, models.EventDiary); err != nil {
			return handled(models.Reply{}, err)
		}
		return handled(models.Reply{Text: textDiaryCleared, Menu: models.MenuMain}, nil)
	case BtnGoals:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		if err := e.clearState(u); err != nil {
			return handled(models.Reply{}, err)
		}
		return handled(models.Reply{
			Text: "Твои цели:\n" + formatList(u.Goals, "Цели пока не добавлены.") + "\n\nВыбери действие.",
			Menu: models.MenuGoals,
		}, nil)
	case BtnGoalAdd:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.enterFlow(u, models.StateAwaitingGoalAdd, nil,
			models.Reply{Text: textAskGoal}))
	case BtnGoalsClear:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		if err := e.store.Update(u.UserID, map[string]any{
			"goals": []string{}, "conv_state": models.StateIdle,
		}); err != nil {
			return handled(models.Reply{}, err)
		}
		return handled(models.Reply{Text: textGoalsCleared, Menu: models.MenuMain}, nil)
	case BtnReasons:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		if err := e.clearState(u); err != nil {
			return handled(models.Reply{}, err)
		}
		return handled(models.Reply{
			Text: "Твои причины бросить:\n" + formatList(u.Reasons, "Причины пока не добавлены.") + "\n\nВыбери действие.",
			Menu: models.MenuReasons,
		}, nil)
	case BtnReasonAdd:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		return handled(e.enterFlow(u, models.StateAwaitingReasonAdd, nil,
			models.Reply{Text: textAskReason}))
	case BtnReasonsClear:
		if r, ok := e.requireOnboarding(u); !ok {
			return handled(r, nil)
		}
		if err := e.store.Update(u.UserID, map[string]any{
			"reasons": []string{}, "conv_state": models.StateIdle,
		}); err != nil {
			return handled(models.Reply{}, err)
		}
		return handled(models.Reply{Text: textReasonsClear, Menu: models.MenuMain}, nil)
	}

	return models.Reply{}, false, nil
}

func (e *Engine) start(u *models.UserProfile) (models.Reply, error) {
	if u.OnboardingCompleted {
		return models.Reply{Text: textWelcomeBack, Menu: models.MenuMain}, nil
	}
	return models.Reply{Text: textIntro, Menu: models.MenuIntro}, nil
}

// enterFlow clears every awaiting marker and sets exactly one, together with
// any extra field updates, in a single store write.
func (e *Engine) enterFlow(u *models.UserProfile, state models.ConvState, extra map[string]any, reply models.Reply) (models.Reply, error) {
	fields := map[string]any{"conv_state": state}
	for k, v := range extra {
		fields[k] = v
	}
	if err := e.store.Update(u.UserID, fields); err != nil {
		return models.Reply{}, err
	}
	return reply, nil
}

func (e *Engine) clearState(u *models.UserProfile) error {
	if u.State == models.StateIdle {
		return nil
	}
	return e.store.Update(u.UserID, map[string]any{"conv_state": models.StateIdle})
}

func (e *Engine) requireOnboarding(u *models.UserProfile) (models.Reply, bool) {
	if u.OnboardingCompleted {
		return models.Reply{}, true
	}
	return models.Reply{Text: textFinishSetup, Menu: models.MenuIntro}, false
}

// ---------- awaiting input --------------------------------------------------

func (e *Engine) handleAwaiting(u *models.UserProfile, text string) (models.Reply, error) {
	if cancelWords[strings.ToLower(text)] {
		if err := e.clearState(u); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: cancelText(u.State), Menu: models.MenuMain}, nil
	}

	switch u.State {
	case models.StateAwaitingSoberSince:
		return e.acceptSoberSince(u, text)
	case models.StateAwaitingWeeklySpend:
		return e.acceptWeeklySpend(u, text)
	case models.StateAwaitingWeeklyHours:
		return e.acceptWeeklyHours(u, text)
	case models.StateAwaitingMorningTime:
		return e.acceptReminderTime(u, text, true)
	case models.StateAwaitingEveningTime:
		return e.acceptReminderTime(u, text, false)
	case models.StateAwaitingCravingNumber:
		return e.acceptCravingNumber(u, text)
	case models.StateAwaitingDiaryEntry:
		if err := e.store.AppendEvent(u.UserID, models.EventDiary, map[string]any{"text": text}); err != nil {
			return models.Reply{}, err
		}
		if err := e.clearState(u); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textDiarySaved, Menu: models.MenuMain}, nil
	case models.StateAwaitingGoalAdd:
		goals := append(append([]string{}, u.Goals...), text)
		if err := e.store.Update(u.UserID, map[string]any{
			"goals": goals, "conv_state": models.StateIdle,
		}); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textGoalAdded, Menu: models.MenuMain}, nil
	case models.StateAwaitingReasonAdd:
		reasons := append(append([]string{}, u.Reasons...), text)
		if err := e.store.Update(u.UserID, map[string]any{
			"reasons": reasons, "conv_state": models.StateIdle,
		}); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textReasonAdded, Menu: models.MenuMain}, nil
	case models.StateAwaitingTriggers:
		var triggers []string
		for _, t := range strings.Split(text, ",") {
			if t = strings.TrimSpace(t); t != "" {
				triggers = append(triggers, t)
			}
		}
		if triggers == nil {
			triggers = []string{}
		}
		if err := e.store.Update(u.UserID, map[string]any{
			"triggers": triggers, "conv_state": models.StateIdle,
		}); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textTriggersSet, Menu: models.MenuMain}, nil
	case models.StateAwaitingGoalAndMotivation:
		goal, motivation := text, text
		if i := strings.Index(text, "\n"); i >= 0 {
			goal, motivation = text[:i], text[i+1:]
		}
		goal = strings.TrimSpace(goal)
		if goal == "" {
			goal = models.GoalUnset
		}
		if err := e.store.Update(u.UserID, map[string]any{
			"goal":       goal,
			"motivation": strings.TrimSpace(motivation),
			"conv_state": models.StateIdle,
		}); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textGoalMotivSet, Menu: models.MenuMain}, nil
	}

	// Unknown persisted state: drop back to idle rather than trap the user.
	if err := e.clearState(u); err != nil {
		return models.Reply{}, err
	}
	return models.Reply{Text: textUseMenu, Menu: models.MenuMain}, nil
}

func cancelText(s models.ConvState) string {
	switch s {
	case models.StateAwaitingDiaryEntry:
		return "Отменил запись."
	case models.StateAwaitingGoalAdd:
		return "Добавление цели отменено."
	case models.StateAwaitingReasonAdd:
		return "Добавление причины отменено."
	case models.StateAwaitingTriggers:
		return "Настройка триггеров отменена."
	case models.StateAwaitingGoalAndMotivation:
		return "Настройка отменена."
	default:
		return "Действие отменено."
	}
}

func (e *Engine) acceptSoberSince(u *models.UserProfile, text string) (models.Reply, error) {
	d, err := time.Parse(inputDateLayout, text)
	if err != nil {
		return models.Reply{Text: textBadDate}, nil
	}
	if err := e.store.Update(u.UserID, map[string]any{
		"sober_since_date": d,
		"conv_state":       models.StateAwaitingWeeklySpend,
	}); err != nil {
		return models.Reply{}, err
	}
	return models.Reply{Text: textAskSpend}, nil
}

func (e *Engine) acceptWeeklySpend(u *models.UserProfile, text string) (models.Reply, error) {
	spend, err := parseDecimal(text)
	if err != nil {
		return models.Reply{Text: textBadSpend}, nil
	}
	if err := e.store.Update(u.UserID, map[string]any{
		"weekly_alcohol_spend": spend,
		"conv_state":           models.StateAwaitingWeeklyHours,
	}); err != nil {
		return models.Reply{}, err
	}
	return models.Reply{Text: textAskHours}, nil
}

func (e *Engine) acceptWeeklyHours(u *models.UserProfile, text string) (models.Reply, error) {
	hours, err := parseDecimal(text)
	if err != nil {
		return models.Reply{Text: textBadHours}, nil
	}
	fields := map[string]any{
		"weekly_alcohol_hours": hours,
		"conv_state":           models.StateIdle,
	}
	if !u.OnboardingCompleted {
		// First pass: chain straight into reminder setup.
		fields["conv_state"] = models.StateAwaitingMorningTime
		if err := e.store.Update(u.UserID, fields); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textAskMorning}, nil
	}
	if err := e.store.Update(u.UserID, fields); err != nil {
		return models.Reply{}, err
	}
	return models.Reply{Text: textTrackerDone, Menu: models.MenuSettings}, nil
}

func (e *Engine) acceptReminderTime(u *models.UserProfile, text string, morning bool) (models.Reply, error) {
	firstPass := !u.OnboardingCompleted
	menu := models.MenuSettings
	if firstPass {
		menu = models.MenuMain
	}

	if offWords[strings.ToLower(text)] {
		if err := e.store.ResetReminders(u.UserID); err != nil {
			return models.Reply{}, err
		}
		if err := e.store.Update(u.UserID, map[string]any{
			"conv_state":           models.StateIdle,
			"onboarding_completed": true,
		}); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textRemindersOff, Menu: menu}, nil
	}

	t, err := time.Parse(timeLayout, text)
	if err != nil {
		return models.Reply{Text: textBadTime}, nil
	}

	if morning {
		if err := e.store.Update(u.UserID, map[string]any{
			"morning_time": t.Format(timeLayout),
			"conv_state":   models.StateAwaitingEveningTime,
		}); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{Text: textAskEvening}, nil
	}

	if err := e.store.Update(u.UserID, map[string]any{
		"evening_time":         t.Format(timeLayout),
		"conv_state":           models.StateIdle,
		"onboarding_completed": true,
	}); err != nil {
		return models.Reply{}, err
	}
	return models.Reply{Text: textRemindersOn, Menu: menu}, nil
}

func (e *Engine) acceptCravingNumber(u *models.UserProfile, text string) (models.Reply, error) {
	level, err := strconv.Atoi(text)
	if err != nil || level < 0 || level > 10 {
		return models.Reply{Text: textBadCraving, Menu: models.MenuCravingScale}, nil
	}
	if err := e.clearState(u); err != nil {
		return models.Reply{}, err
	}
	if err := e.store.AppendEvent(u.UserID, models.EventCraving, map[string]any{"level": level}); err != nil {
		return models.Reply{}, err
	}
	return models.Reply{Text: cravingTierText(level), Menu: models.MenuCravingMethods}, nil
}

func cravingTierText(level int) string {
	switch {
	case level <= 3:
		return textCravingMild
	case level <= 7:
		return textCravingMid
	default:
		return textCravingHigh
	}
}

// ---------- check-in / relapse ---------------------------------------------

// checkIn records the daily "no alcohol today" mark. Idempotent per calendar
// day; streak and last_sober_date always move together.
func (e *Engine) checkIn(u *models.UserProfile) (models.Reply, error) {
	today := dateOnly(e.now())

	if u.LastSoberDate != nil && u.LastSoberDate.Equal(today) {
		return models.Reply{Text: textAlreadySober, Menu: models.MenuMain}, nil
	}

	streak := 1
	if u.LastSoberDate != nil && u.LastSoberDate.Equal(today.AddDate(0, 0, -1)) {
		streak = u.Streak + 1
	}

	if err := e.store.Update(u.UserID, map[string]any{
		"last_sober_date": today,
		"streak":          streak,
		"conv_state":      models.StateIdle,
	}); err != nil {
		return models.Reply{}, err
	}
	if err := e.store.AppendEvent(u.UserID, models.EventSoberDay, map[string]any{
		"date": today.Format("2006-01-02"),
	}); err != nil {
		return models.Reply{}, err
	}
	return models.Reply{
		Text: fmt.Sprintf("Отлично! Серия трезвых дней: %d", streak),
		Menu: models.MenuMain,
	}, nil
}

// relapse reports the stats as they stood, then wipes progress, tracker
// config, reminders and the event log, returning the user to onboarding.
func (e *Engine) relapse(u *models.UserProfile) (models.Reply, error) {
	statsBefore, err := e.statsText(u)
	if err != nil {
		return models.Reply{}, err
	}
	prev := u.Streak

	if err := e.store.ResetProgress(u.UserID); err != nil {
		return models.Reply{}, err
	}
	if err := e.store.ResetTracker(u.UserID); err != nil {
		return models.Reply{}, err
	}
	if err := e.store.ResetReminders(u.UserID); err != nil {
		return models.Reply{}, err
	}

	text := "Твоя статистика перед сбросом:\n\n" + statsBefore + "\n\n" +
		fmt.Sprintf("Не осуждаю тебя 🙏\nПредыдущая серия: %d дней.\n", prev) +
		"Вся статистика, трекер и напоминания удалены.\n" +
		"Это не конец, а опыт. Ты справишься.\n\n" +
		"Нажми «В путь в трезвую жизнь», чтобы начать заново."
	return models.Reply{Text: text, Menu: models.MenuIntro}, nil
}

// ---------- actions (inline buttons) ----------------------------------------

func (e *Engine) action(u *models.UserProfile, action string) (models.Reply, error) {
	switch {
	case strings.HasPrefix(action, ActionCravingScale):
		level, err := strconv.Atoi(strings.TrimPrefix(action, ActionCravingScale))
		if err != nil || level < 0 || level > 10 {
			return models.Reply{Text: textBadCraving, Menu: models.MenuCravingScale}, nil
		}
		if err := e.clearState(u); err != nil {
			return models.Reply{}, err
		}
		if err := e.store.AppendEvent(u.UserID, models.EventCraving, map[string]any{"level": level}); err != nil {
			return models.Reply{}, err
		}
		return models.Reply{
			Text: fmt.Sprintf("Ты отметил(а) тягу на уровне %d/10.\n\n%s\nВыбери способ ниже:", level, cravingTierText(level)),
			Menu: models.MenuCravingMethods,
		}, nil

	case strings.HasPrefix(action, ActionCravingMethod):
		key := strings.TrimPrefix(action, ActionCravingMethod)
		text, ok := cravingMethodTexts[key]
		if !ok {
			text = "Выбери один из доступных способов борьбы с тягой ниже."
		}
		return models.Reply{Text: text, Menu: models.MenuCravingMethods}, nil
	}

	// Unknown action is not an error, just guidance.
	return models.Reply{Text: textUseMenu, Menu: models.MenuMain}, nil
}

// ---------- helpers ---------------------------------------------------------

func (e *Engine) statsText(u *models.UserProfile) (string, error) {
	counts, err := e.store.CountEventsByType(u.UserID)
	if err != nil {
		return "", err
	}
	var lastRelapse *time.Time
	if ev, err := e.store.LatestEvent(u.UserID, models.EventRelapse); err != nil {
		return "", err
	} else if ev != nil {
		t := ev.CreatedAt
		lastRelapse = &t
	}
	return stats.FullText(u, counts, lastRelapse, e.now()), nil
}

func (e *Engine) diaryMenu(u *models.UserProfile) (models.Reply, error) {
	if err := e.clearState(u); err != nil {
		return models.Reply{}, err
	}
	events, err := e.store.ListRecent(u.UserID, models.EventDiary, 10)
	if err != nil {
		return models.Reply{}, err
	}
	var entries []string
	for _, ev := range events {
		txt, _ := ev.Payload["text"].(string)
		entries = append(entries, ev.CreatedAt.Format("02.01.2006 15:04")+" — "+txt)
	}
	txt := "Записей пока нет."
	if len(entries) > 0 {
		txt = strings.Join(entries, "\n")
	}
	return models.Reply{
		Text: "Последние записи:\n" + txt + "\n\nВыбери действие.",
		Menu: models.MenuDiary,
	}, nil
}

func settingsText(u *models.UserProfile) string {
	var parts []string

	if u.SoberSinceDate != nil {
		tracker := "Трезвость с " + u.SoberSinceDate.Format(inputDateLayout)
		if u.WeeklyAlcoholSpend != nil {
			tracker += fmt.Sprintf(", расход было: %g в неделю", *u.WeeklyAlcoholSpend)
		}
		if u.WeeklyAlcoholHours != nil {
			tracker += fmt.Sprintf(", времени уходило: %g ч/нед", *u.WeeklyAlcoholHours)
		}
		parts = append(parts, "Трекер: "+tracker)
	} else {
		parts = append(parts, "Трекер: не настроен")
	}

	if u.MorningTime != "" || u.EveningTime != "" {
		reminders := "Напоминания: "
		if u.MorningTime != "" {
			reminders += "утро " + u.MorningTime + " "
		}
		if u.EveningTime != "" {
			reminders += "вечер " + u.EveningTime
		}
		parts = append(parts, strings.TrimSpace(reminders))
	} else {
		parts = append(parts, "Напоминания: выключены")
	}

	if u.Goal != "" && u.Goal != models.GoalUnset {
		parts = append(parts, "Цель: "+u.Goal)
	}
	if u.Motivation != "" {
		parts = append(parts, "Мотивация: "+u.Motivation)
	}
	if len(u.Triggers) > 0 {
		parts = append(parts, "Триггеры: "+strings.Join(u.Triggers, ", "))
	}
	if len(u.Goals) > 0 {
		parts = append(parts, "Цели: "+strings.Join(u.Goals, ", "))
	}
	if len(u.Reasons) > 0 {
		parts = append(parts, "Причины бросить: "+strings.Join(u.Reasons, ", "))
	}
	return strings.Join(parts, "\n")
}

func formatList(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• " + it)
	}
	return b.String()
}

func parseDecimal(text string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
