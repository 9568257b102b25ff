// Package stats derives progress numbers from a profile and its event log.
// Nothing here is stored; every value is recomputed per request.
package stats

import (
	"fmt"
	"strings"
	"time"

	"alcofree-bot/internal/models"
)

const displayDate = "02.01.2006"

// DaysSober counts days since the tracker start date, inclusive of the start
// day. Zero when the tracker is not configured.
func DaysSober(u *models.UserProfile, today time.Time) int {
	if u.SoberSinceDate == nil {
		return 0
	}
	since := dateOnly(*u.SoberSinceDate)
	days := int(dateOnly(today).Sub(since).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Achievements renders the milestone line: one trophy per full year, one gem
// per full month of the remainder, one star per full week, one plus per
// leftover day. Empty when days <= 0.
func Achievements(days int) string {
	if days <= 0 {
		return ""
	}
	years := days / 365
	rem := days % 365
	months := rem / 30
	rem = rem % 30
	weeks := rem / 7
	d := rem % 7

	var parts []string
	if years > 0 {
		parts = append(parts, strings.Repeat("🏆", years))
	}
	if months > 0 {
		parts = append(parts, strings.Repeat("💎", months))
	}
	if weeks > 0 {
		parts = append(parts, strings.Repeat("⭐", weeks))
	}
	if d > 0 {
		parts = append(parts, strings.Repeat("➕", d))
	}
	return strings.Join(parts, " ")
}

// SoberText builds the tracker block: sober-since line, achievements, money
// and time saved. Empty when the tracker start date is unset.
func SoberText(u *models.UserProfile, today time.Time) string {
	if u.SoberSinceDate == nil {
		return ""
	}
	days := DaysSober(u, today)
	txt := fmt.Sprintf("Ты не пьёшь с %s (%d дней).", u.SoberSinceDate.Format(displayDate), days)

	if ach := Achievements(days); ach != "" {
		txt += "\n" + ach
	}
	if u.WeeklyAlcoholSpend != nil {
		saved := *u.WeeklyAlcoholSpend / 7 * float64(days)
		txt += fmt.Sprintf("\nСэкономлено денег: %.0f у.е.", saved)
	}
	if u.WeeklyAlcoholHours != nil {
		savedH := *u.WeeklyAlcoholHours / 7 * float64(days)
		txt += fmt.Sprintf("\nВернул(а) времени: %.1f часов", savedH)
	}
	return txt
}

// FullText builds the complete statistics message: tracker block, check-in
// streak, reminder times, event counters and the last relapse, when present.
func FullText(u *models.UserProfile, counts map[string]int, lastRelapse *time.Time, today time.Time) string {
	var parts []string

	if s := SoberText(u, today); s != "" {
		parts = append(parts, s)
	}
	if u.Streak > 0 {
		parts = append(parts, fmt.Sprintf("Серия ежедневных отметок: %d дней.", u.Streak))
	}

	if u.MorningTime != "" || u.EveningTime != "" {
		r := "Напоминания: "
		if u.MorningTime != "" {
			r += "утро " + u.MorningTime + " "
		}
		if u.EveningTime != "" {
			r += "вечер " + u.EveningTime
		}
		parts = append(parts, strings.TrimSpace(r))
	}

	if len(counts) > 0 {
		var ev []string
		if n := counts[models.EventSoberDay]; n > 0 {
			ev = append(ev, fmt.Sprintf("Трезвых дней отмечено: %d", n))
		}
		if n := counts[models.EventRelapse]; n > 0 {
			ev = append(ev, fmt.Sprintf("Срывов: %d", n))
		}
		if n := counts[models.EventCraving]; n > 0 {
			ev = append(ev, fmt.Sprintf("Эпизодов тяги: %d", n))
		}
		if n := counts[models.EventDiary]; n > 0 {
			ev = append(ev, fmt.Sprintf("Записей в дневнике: %d", n))
		}
		if len(ev) > 0 {
			parts = append(parts, strings.Join(ev, "\n"))
		}
	}

	if lastRelapse != nil {
		daysAgo := int(dateOnly(today).Sub(dateOnly(*lastRelapse)).Hours() / 24)
		parts = append(parts, fmt.Sprintf("Последний срыв: %s (%d дней назад)",
			lastRelapse.Format(displayDate), daysAgo))
	}

	if len(parts) == 0 {
		return "Статистики пока мало — начни отмечать прогресс!"
	}
	return strings.Join(parts, "\n\n")
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
