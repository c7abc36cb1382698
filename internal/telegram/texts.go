package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
)

const backButton = "Back"

// UI texts
const (
	pitchText = "<b>Have you heard of the 4000 weeks idea?</b>\n" +
		"An average life is about 70 years — roughly 4000 weeks.\n\n" +
		"How would it feel to know which week you are living <b>right now</b>?\n" +
		"<i>Are you past the halfway mark?</i>\n\n" +
		"Let's talk about you first — <b>what should I call you?</b>\n" +
		"Pick a button or type your own."

	askBirthDateText = "<b>Where do we start counting from?</b>\nSend your birth date as DD.MM.YYYY"
	askWeekdayText   = "<b>When should I write to you?</b>\nPick a day of the week"
	askHourText      = "<b>At what hour?</b>\nPick a convenient hour"

	badNameText      = "Please send me a name I can use."
	badBirthDateText = "Send the date as DD.MM.YYYY, e.g. 14.03.1992"
	futureDateText   = "That date is in the future. Send your real birth date."
	badWeekdayText   = "Pick a day of the week from the keyboard below."
	badHourText      = "Pick an hour from the keyboard below."

	notRegisteredText = "You are not registered yet. Use /start to begin."
	useStartText      = "<b>Use /start to begin</b>"
	useReinitText     = "<b>Use /reinit to change your settings</b>"
	stoppedText       = "Done. Your profile is deleted and weekly messages are off.\nUse /start if you change your mind."
	weekSoonText      = "Almost forgot — here is your <b>current week</b>"
)

func profileSummary(p *domain.UserProfile) string {
	return fmt.Sprintf(
		"<b>%s</b>, here is what I know:\n"+
			"• Birth date: %s\n"+
			"• Notification day: %s\n"+
			"• Notification time: %s\n\n"+
			"Use /reinit to change anything, /week for your current week, /stop to leave.",
		p.CustomName,
		domain.FormatDate(p.BirthDate),
		p.NotifyWeekday.String(),
		domain.FormatTimeOfDay(p.NotifyHour, p.NotifyMinute),
	)
}

func confirmationText(p *domain.UserProfile) string {
	return fmt.Sprintf(
		"<b>Well then...</b> I will remind you about the shortness of things every <b>%s at %s</b>.",
		p.NotifyWeekday.String(),
		domain.FormatTimeOfDay(p.NotifyHour, p.NotifyMinute),
	)
}

// --- Keyboards ---

func backKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)),
	)
	kb.OneTimeKeyboard = true
	return kb
}

// nameKeyboard offers the user's Telegram identity as ready-made answers.
func nameKeyboard(username, fullName string) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	var first []tgbotapi.KeyboardButton
	if username != "" {
		first = append(first, tgbotapi.NewKeyboardButton(username))
	}
	if fullName != "" && fullName != username {
		first = append(first, tgbotapi.NewKeyboardButton(fullName))
	}
	if len(first) > 0 {
		rows = append(rows, first)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)))
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	return kb
}

func weekdayKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.Monday.String()),
			tgbotapi.NewKeyboardButton(domain.Tuesday.String()),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.Wednesday.String()),
			tgbotapi.NewKeyboardButton(domain.Thursday.String()),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(domain.Friday.String()),
			tgbotapi.NewKeyboardButton(domain.Saturday.String()),
		),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(domain.Sunday.String())),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)),
	)
	kb.OneTimeKeyboard = true
	return kb
}

// hourKeyboard lays out the 24 hours grouped morning / day / evening / night.
func hourKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row := func(from, to int) []tgbotapi.KeyboardButton {
		var btns []tgbotapi.KeyboardButton
		for h := from; h <= to; h++ {
			btns = append(btns, tgbotapi.NewKeyboardButton(fmt.Sprintf("%d", h)))
		}
		return btns
	}
	kb := tgbotapi.NewReplyKeyboard(
		row(6, 11),  // morning
		row(12, 17), // day
		row(18, 23), // evening
		row(0, 5),   // night
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(backButton)),
	)
	kb.OneTimeKeyboard = true
	return kb
}
