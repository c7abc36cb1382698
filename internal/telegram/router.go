package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/RockerzXY/weekscounter-bot/internal/domain"
	"github.com/RockerzXY/weekscounter-bot/internal/store"
)

// Scheduler is what the router needs from the notifier: keep the job
// in sync with edits and render the current-week message on demand.
// notify.Notifier implements it.
type Scheduler interface {
	Reschedule(ctx context.Context, userID int64) error
	Unschedule(userID int64)
	ComposeFor(p *domain.UserProfile) string
}

// Onboarding steps. A draft walks Name → BirthDate → Weekday → Hour and
// is discarded once the profile is saved.
type step int

const (
	stepName step = iota + 1
	stepBirthDate
	stepWeekday
	stepHour
)

// draft is the answers-collected-so-far record for one chat.
type draft struct {
	step       step
	customName string
	birthDate  time.Time
	weekday    domain.Weekday
}

// Router wires Telegram updates to handlers and holds the in-memory
// onboarding state. Drafts are not persisted; an interrupted onboarding
// simply starts over.
type Router struct {
	bot      *tgbotapi.BotAPI
	log      *zap.Logger
	repo     store.Repo
	notifier Scheduler

	mu     sync.Mutex
	drafts map[int64]*draft
}

func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, notifier Scheduler) *Router {
	return &Router{
		bot:      bot,
		log:      log,
		repo:     repo,
		notifier: notifier,
		drafts:   make(map[int64]*draft),
	}
}

func (r *Router) getDraft(chatID int64) *draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drafts[chatID]
}

func (r *Router) setDraft(chatID int64, d *draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[chatID] = d
}

func (r *Router) clearDraft(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, chatID)
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		r.handleStart(ctx, msg)
	case strings.HasPrefix(text, "/reinit"):
		r.handleReinit(ctx, msg)
	case strings.HasPrefix(text, "/week"):
		r.handleWeek(ctx, chatID)
	case strings.HasPrefix(text, "/stop"):
		r.handleStop(ctx, chatID)
	default:
		if d := r.getDraft(chatID); d != nil {
			r.advanceDraft(ctx, msg, d)
			return
		}
		// Free-form text outside any flow.
		r.sendHTML(chatID, useStartText)
	}
}

// --- send helpers ---

func (r *Router) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendWithKeyboard(chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Router) sendRemovingKeyboard(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
