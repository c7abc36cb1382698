package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RockerzXY/weekscounter-bot/internal/config"
	"github.com/RockerzXY/weekscounter-bot/internal/notify"
	"github.com/RockerzXY/weekscounter-bot/internal/scheduler"
	"github.com/RockerzXY/weekscounter-bot/internal/store"
	"github.com/RockerzXY/weekscounter-bot/internal/telegram"
)

// App owns every long-lived component. There is no ambient global state:
// everything is constructed here once and passed down by reference.
type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server

	repo     store.Repo
	registry *scheduler.Registry
	notifier *notify.Notifier
	router   *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting weekscounter-bot",
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	a.registry = scheduler.New(a.log)
	a.notifier = notify.New(a.repo, a.registry, telegram.NewSender(a.bot), a.log)
	a.router = telegram.NewRouter(a.bot, a.log, a.repo, a.notifier)

	// The bot transport is up; replay stored users into the registry.
	// A startup failure here is fatal by contract.
	if err := a.notifier.Start(ctx); err != nil {
		a.log.Error("notifier start failed", zap.Error(err))
		return err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case upd := <-updCh:
				a.router.HandleUpdate(ctx, upd)
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		a.log.Info("shutdown signal received")

		a.registry.Stop()

		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.httpSrv.Shutdown(shCtx); err != nil {
			a.log.Warn("http server shutdown error", zap.Error(err))
		}
		if err := a.repo.Close(); err != nil {
			a.log.Warn("store close error", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
