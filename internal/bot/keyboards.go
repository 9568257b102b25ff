package bot

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"alcofree-bot/internal/engine"
	"alcofree-bot/internal/models"
)

var introKB = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnStartJourney),
	),
)

var mainKB = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnCraving),
		tgbotapi.NewKeyboardButton(engine.BtnStats),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnCheckIn),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnReasons),
		tgbotapi.NewKeyboardButton(engine.BtnGoals),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnDiary),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnRelapse),
		tgbotapi.NewKeyboardButton(engine.BtnSettings),
	),
)

var settingsKB = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnSetupTracker),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnSetupReminders),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnGoalMotivation),
		tgbotapi.NewKeyboardButton(engine.BtnTriggers),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnMainMenu),
	),
)

var diaryKB = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnDiaryAdd),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnDiaryClear),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnMainMenu),
	),
)

var goalsKB = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnGoalAdd),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnGoalsClear),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnMainMenu),
	),
)

var reasonsKB = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnReasonAdd),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnReasonsClear),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(engine.BtnMainMenu),
	),
)

// cravingScaleKB is two rows of 0..10 inline buttons.
var cravingScaleKB = func() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i := 0; i <= 10; i++ {
		label := strconv.Itoa(i)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, engine.ActionCravingScale+label))
		if i == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	rows = append(rows, row)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}()

var cravingMethodsKB = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Дыхание", engine.ActionCravingMethod+"breath"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Стакан воды", engine.ActionCravingMethod+"water"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Движение/упражнение", engine.ActionCravingMethod+"move"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Позвонить другу", engine.ActionCravingMethod+"call"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Переключить внимание", engine.ActionCravingMethod+"focus"),
	),
)

// keyboardFor maps a menu id to its markup. Nil means no keyboard
// change.
func keyboardFor(menu models.Menu) any {
	switch menu {
	case models.MenuIntro:
		return introKB
	case models.MenuMain:
		return mainKB
	case models.MenuSettings:
		return settingsKB
	case models.MenuDiary:
		return diaryKB
	case models.MenuGoals:
		return goalsKB
	case models.MenuReasons:
		return reasonsKB
	case models.MenuCravingScale:
		return cravingScaleKB
	case models.MenuCravingMethods:
		return cravingMethodsKB
	default:
		return nil
	}
}
