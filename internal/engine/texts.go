package engine

// Keyboard button labels. The transport layer renders them into reply
// keyboards; the engine matches inbound text against them.
const (
	BtnStartJourney = "В путь в трезвую жизнь"
	BtnCraving      = "Тяга сейчас"
	BtnStats        = "Моя статистика"
	BtnReasons      = "Мои причины бросить"
	BtnGoals        = "Мои цели"
	BtnDiary        = "Дневник"
	BtnCheckIn      = "Я сегодня не пил(а)"
	BtnRelapse      = "Сорвался(ась)"
	BtnSettings     = "Настройки"
	BtnMainMenu     = "В главное меню"

	BtnSetupTracker   = "Настроить трекер"
	BtnSetupReminders = "Настроить напоминания"
	BtnGoalMotivation = "Цель и мотивация"
	BtnTriggers       = "Триггеры"

	BtnDiaryAdd   = "Добавить запись"
	BtnDiaryClear = "Удалить записи"

	BtnGoalAdd    = "Добавить цель"
	BtnGoalsClear = "Удалить цели"

	BtnReasonAdd    = "Добавить причину"
	BtnReasonsClear = "Удалить причины"
)

// Inbound action ids for inline buttons.
const (
	ActionCravingScale  = "craving_scale_"  // + level 0..10
	ActionCravingMethod = "craving_method_" // + method key
)

var cancelWords = map[string]bool{
	"отмена": true,
	"cancel": true,
	"стоп":   true,
}

var offWords = map[string]bool{
	"выключить": true,
	"отключить": true,
	"не надо":   true,
	"нет":       true,
}

const (
	textIntro = "Привет! Я бот, который помогает работать с алкогольной тягой.\n\n" +
		"⚠️ Я не врач и не заменяю лечение.\n" +
		"При тяжёлых симптомах — вызывай скорую.\n\n" +
		"Нажми «В путь в трезвую жизнь», чтобы сразу настроить трекер и напоминания, " +
		"после чего откроется главное меню."
	textWelcomeBack   = "С возвращением! Используй меню ниже."
	textFinishSetup   = "Сначала пройди начальную настройку — нажми «В путь в трезвую жизнь»."
	textIdleOnboard   = "Давай закончим настройку. Нажми «В путь в трезвую жизнь», чтобы пройти шаги."
	textUseMenu       = "Используй кнопки ниже 👇"
	textBackToMain    = "Возвращаю главное меню."
	textAskSoberSince = "С какой даты ты не пьёшь? Формат ДД.ММ.ГГГГ"
	textBadDate       = "Формат: ДД.ММ.ГГГГ"
	textAskSpend      = "Сколько денег уходило на алкоголь в неделю?"
	textBadSpend      = "Напиши число, например: 3000"
	textAskHours      = "Сколько часов в неделю уходило на алкоголь?"
	textBadHours      = "Напиши число, например: 5"
	textTrackerDone   = "Трекер настроен! 👍"
	textAskMorning    = "Во сколько утром присылать сообщение? Формат ЧЧ:ММ.\nЕсли напоминания не нужны, напиши «выключить»."
	textAskEvening    = "Теперь напиши время вечернего напоминания (ЧЧ:ММ) или «выключить», если напоминания не нужны."
	textBadTime       = "Формат времени ЧЧ:ММ или напиши «выключить»."
	textRemindersOff  = "Напоминания выключены."
	textRemindersOn   = "Напоминания включены! ⚡"
	textAskCraving    = "🆘 ПОМОЩЬ ПРИ ТЯГЕ\n\nОцени, пожалуйста, силу тяги по шкале от 0 до 10.\n0 — совсем не тянет, 10 — очень сильное желание выпить."
	textBadCraving    = "Напиши число 0–10"
	textAlreadySober  = "Сегодня уже отмечено, что ты не пил 💚"
	textAskDiary      = "Напиши запись в дневник. Чтобы отменить, отправь «отмена»."
	textDiarySaved    = "Сохранил запись в дневник."
	textDiaryCleared  = "Все записи дневника удалены."
	textAskGoal       = "Напиши цель. Чтобы отменить, отправь «отмена»."
	textGoalAdded     = "Цель добавлена."
	textGoalsCleared  = "Цели удалены."
	textAskReason     = "Напиши причину бросить. Чтобы отменить, отправь «отмена»."
	textReasonAdded   = "Причина добавлена."
	textReasonsClear  = "Причины удалены."
	textTriggersSet   = "Триггеры обновлены."
	textAskGoalMotiv  = "Напиши цель и мотивацию: первая строка — цель, остальное — мотивация.\nЧтобы отменить, отправь «отмена»."
	textGoalMotivSet  = "Цель и мотивация обновлены."
)

const (
	textCravingMild = "Тяга слабая. Попробуй переключиться: музыка, душ, прогулка."
	textCravingMid  = "Попробуй дыхание 4-7-8, это снимет напряжение."
	textCravingHigh = "Очень сильная тяга. Выйди из комнаты/магазина. " +
		"Позвони близкому. Сделай 10 глубоких вдохов."
)

// cravingMethodTexts are the detailed coping instructions behind the inline
// method buttons.
var cravingMethodTexts = map[string]string{
	"breath": "🧘 Упражнение «Дыхание 4–7–8»\n\n" +
		"1. Вдохни через нос на 4 счёта.\n" +
		"2. Задержи дыхание на 7 счётов.\n" +
		"3. Медленно выдыхай через рот на 8 счётов.\n\n" +
		"Сделай так 4 цикла. Это помогает снизить напряжение и сигнализирует мозгу, что опасности нет.",
	"water": "💧 Стакан воды\n\n" +
		"Налей стакан холодной воды и выпей его небольшими глотками.\n" +
		"Сосредоточься на ощущениях: как вода проходит по горлу, какая она на вкус, какая температура.\n\n" +
		"Это переключает внимание и помогает телу почувствовать себя лучше.",
	"move": "🏃 Движение/упражнение\n\n" +
		"Выбери любое простое движение: приседания, отжимания, быстрая ходьба по комнате, растяжка.\n" +
		"Сделай 10–20 повторений или 3–5 минут движения.\n\n" +
		"Тело сбрасывает напряжение, и тяга часто уменьшается.",
	"call": "📞 Позвонить другу\n\n" +
		"Позвони человеку, который может поддержать. Скажи честно, что тебе сейчас тяжело.\n" +
		"Даже 5 минут разговора могут сильно снизить тягу.\n\n" +
		"Если нет подходящего человека — можно написать сообщение самому себе или в дневник.",
	"focus": "🎯 Переключить внимание\n\n" +
		"Выбери занятие, которое может увлечь: сериал, игра, книга, музыка, уборка, душ.\n" +
		"Поставь таймер на 15–20 минут и полностью уйди в это занятие.\n\n" +
		"Обычно к концу этого времени волна тяги заметно снижается.",
}
