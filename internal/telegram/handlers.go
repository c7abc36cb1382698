package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
	"github.com/RockerzXY/weekscounter-bot/internal/store"
)

func senderFullName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	return strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
}

func senderUserName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	return msg.From.UserName
}

// --- Commands ---

func (r *Router) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	p, err := r.repo.Get(ctx, chatID)
	if err == nil {
		r.clearDraft(chatID)
		r.sendHTML(chatID, profileSummary(p))
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		r.log.Error("get user failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendHTML(chatID, "Something went wrong reading your profile. Try again later.")
		return
	}

	r.beginOnboarding(msg)
}

func (r *Router) handleReinit(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	ok, err := r.repo.Exists(ctx, chatID)
	if err != nil {
		r.log.Error("exists failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendHTML(chatID, "Something went wrong. Try again later.")
		return
	}
	if !ok {
		r.sendHTML(chatID, notRegisteredText)
		return
	}
	r.beginOnboarding(msg)
}

func (r *Router) handleWeek(ctx context.Context, chatID int64) {
	p, err := r.repo.Get(ctx, chatID)
	if errors.Is(err, store.ErrNotFound) {
		r.sendHTML(chatID, notRegisteredText)
		return
	}
	if err != nil {
		r.log.Error("get user failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendHTML(chatID, "Something went wrong. Try again later.")
		return
	}
	r.sendHTML(chatID, r.notifier.ComposeFor(p))
}

// handleStop deletes the profile and cancels the weekly job.
func (r *Router) handleStop(ctx context.Context, chatID int64) {
	ok, err := r.repo.Exists(ctx, chatID)
	if err != nil {
		r.log.Error("exists failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendHTML(chatID, "Something went wrong. Try again later.")
		return
	}
	if !ok {
		r.sendHTML(chatID, notRegisteredText)
		return
	}
	if err := r.repo.Remove(ctx, chatID); err != nil {
		r.log.Error("remove user failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendHTML(chatID, "Could not delete your profile. Try again later.")
		return
	}
	r.notifier.Unschedule(chatID)
	r.clearDraft(chatID)
	r.sendRemovingKeyboard(chatID, stoppedText)
	r.log.Info("user deleted", zap.Int64("chat_id", chatID))
}

// --- Onboarding FSM ---

func (r *Router) beginOnboarding(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	r.setDraft(chatID, &draft{step: stepName})
	r.sendWithKeyboard(chatID, pitchText,
		nameKeyboard(senderUserName(msg), senderFullName(msg)))
}

// advanceDraft feeds one answer into the onboarding state machine.
func (r *Router) advanceDraft(ctx context.Context, msg *tgbotapi.Message, d *draft) {
	chatID := msg.Chat.ID
	text := msg.Text

	switch d.step {
	case stepName:
		if text == backButton {
			r.clearDraft(chatID)
			if ok, _ := r.repo.Exists(ctx, chatID); ok {
				r.sendRemovingKeyboard(chatID, useReinitText)
			} else {
				r.sendRemovingKeyboard(chatID, useStartText)
			}
			return
		}
		if text == "" {
			r.sendWithKeyboard(chatID, badNameText,
				nameKeyboard(senderUserName(msg), senderFullName(msg)))
			return
		}
		d.customName = text
		d.step = stepBirthDate
		r.sendWithKeyboard(chatID, askBirthDateText, backKeyboard())

	case stepBirthDate:
		if text == backButton {
			d.step = stepName
			r.sendWithKeyboard(chatID, pitchText,
				nameKeyboard(senderUserName(msg), senderFullName(msg)))
			return
		}
		birth, err := domain.ParseBirthDate(text, time.Now())
		if errors.Is(err, domain.ErrFutureBirthDate) {
			r.sendWithKeyboard(chatID, futureDateText, backKeyboard())
			return
		}
		if err != nil {
			r.sendWithKeyboard(chatID, badBirthDateText, backKeyboard())
			return
		}
		d.birthDate = birth
		d.step = stepWeekday
		r.sendWithKeyboard(chatID, askWeekdayText, weekdayKeyboard())

	case stepWeekday:
		if text == backButton {
			d.step = stepBirthDate
			r.sendWithKeyboard(chatID, askBirthDateText, backKeyboard())
			return
		}
		day, err := domain.ParseWeekday(text)
		if err != nil {
			r.sendWithKeyboard(chatID, badWeekdayText, weekdayKeyboard())
			return
		}
		d.weekday = day
		d.step = stepHour
		r.sendWithKeyboard(chatID, askHourText, hourKeyboard())

	case stepHour:
		if text == backButton {
			d.step = stepWeekday
			r.sendWithKeyboard(chatID, askWeekdayText, weekdayKeyboard())
			return
		}
		hour, err := domain.ParseHour(text)
		if err != nil {
			r.sendWithKeyboard(chatID, badHourText, hourKeyboard())
			return
		}
		r.finishOnboarding(ctx, msg, d, hour)
	}
}

// finishOnboarding persists the collected answers and swaps in the new
// weekly job. Upsert must happen before Reschedule, or the job would be
// built from stale data.
func (r *Router) finishOnboarding(ctx context.Context, msg *tgbotapi.Message, d *draft, hour int) {
	chatID := msg.Chat.ID

	p := &domain.UserProfile{
		UserID:        chatID,
		Username:      senderUserName(msg),
		FullName:      senderFullName(msg),
		CustomName:    d.customName,
		BirthDate:     d.birthDate,
		NotifyWeekday: d.weekday,
		NotifyHour:    hour,
		NotifyMinute:  0, // the hour keyboard only offers whole hours
	}
	if err := p.Validate(time.Now()); err != nil {
		// Per-step validation should have caught this; start over.
		r.log.Warn("draft failed validation", zap.Int64("chat_id", chatID), zap.Error(err))
		r.clearDraft(chatID)
		r.sendRemovingKeyboard(chatID, useStartText)
		return
	}

	if err := r.repo.Upsert(ctx, p); err != nil {
		r.log.Error("upsert failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendHTML(chatID, "Could not save your settings. Please try again.")
		return
	}
	if err := r.notifier.Reschedule(ctx, chatID); err != nil {
		r.log.Error("reschedule failed", zap.Int64("chat_id", chatID), zap.Error(err))
		r.sendHTML(chatID, "Saved, but scheduling failed. Use /reinit to retry.")
		return
	}
	r.clearDraft(chatID)
	r.log.Info("user registered", zap.Int64("chat_id", chatID))

	r.sendRemovingKeyboard(chatID, confirmationText(p))
	r.sendHTML(chatID, weekSoonText)
	r.sendHTML(chatID, r.notifier.ComposeFor(p))
}
