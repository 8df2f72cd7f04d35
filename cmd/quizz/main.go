package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/go-multierror"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/config"
	"github.com/aliskhannn/quizz/internal/delivery/telegram"
	"github.com/aliskhannn/quizz/internal/delivery/web"
	"github.com/aliskhannn/quizz/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/quizz/internal/infra/postgres/repository"
	"github.com/aliskhannn/quizz/internal/logger"
	"github.com/aliskhannn/quizz/internal/repository"
	"github.com/aliskhannn/quizz/internal/service"
	"github.com/aliskhannn/quizz/internal/storage"
	"github.com/aliskhannn/quizz/internal/usecase"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cfg.Command {
	case config.CommandSeed:
		err = seed(ctx, cfg, lg)
	default:
		err = serve(ctx, cfg, lg)
	}
	if err != nil {
		lg.Fatal("quizz failed", zap.String("command", cfg.Command), zap.Error(err))
	}
}

// seed copies the questions file into the database.
func seed(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	pool, err := newPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	source := repository.NewFileQuestionRepository(cfg.Questions.Path)
	seeder := pgrepo.NewQuestionSeeder(postgres.NewTransactor(pool))

	n, err := usecase.NewSeedUseCase(source, seeder, lg).Seed(ctx)
	if err != nil {
		return err
	}

	lg.Info("seed done", zap.Int("questions", n), zap.String("path", cfg.Questions.Path))

	return nil
}

func serve(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source, closeSource, err := newQuestionSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	quiz := usecase.NewQuizUseCase(source, service.DefaultRand, lg)

	webSessions := storage.NewSessionStore[*web.Page]()
	chatSessions := storage.NewSessionStore[*telegram.ChatSurface]()

	handler, err := web.NewHandler(lg, quiz, webSessions)
	if err != nil {
		return err
	}

	var tg *telegram.Handler
	if cfg.TelegramEnabled() {
		bot, err := newBot(cfg, lg)
		if err != nil {
			return err
		}
		tg = telegram.NewHandler(bot, lg, quiz, chatSessions)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errs := make(chan error, 3)

	go func() {
		lg.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("http server: %w", err)
		}
	}()

	janitor := service.NewSessionJanitor(cfg.Sessions.PruneSchedule, cfg.Sessions.IdleTimeout, lg, webSessions, chatSessions)
	go func() {
		if err := janitor.Start(ctx); err != nil {
			errs <- fmt.Errorf("session janitor: %w", err)
		}
	}()

	if tg != nil {
		go func() {
			if err := tg.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errs <- fmt.Errorf("telegram: %w", err)
			}
		}()
	} else {
		lg.Info("TELEGRAM_API_TOKEN not set, telegram surface disabled")
	}

	var result *multierror.Error

	select {
	case <-ctx.Done():
		lg.Info("shutdown signal received")
	case err := <-errs:
		result = multierror.Append(result, err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, fmt.Errorf("http shutdown: %w", err))
	}

	return result.ErrorOrNil()
}

// newQuestionSource builds the configured source and a function releasing it.
func newQuestionSource(ctx context.Context, cfg *config.Config) (usecase.QuestionSource, func(), error) {
	switch cfg.Questions.Source {
	case config.SourceHTTP:
		return repository.NewHTTPQuestionRepository(cfg.Questions.URL, cfg.Questions.Timeout), func() {}, nil

	case config.SourcePostgres:
		pool, err := newPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return pgrepo.NewQuestionRepository(pool), pool.Close, nil

	default:
		return repository.NewFileQuestionRepository(cfg.Questions.Path), func() {}, nil
	}
}

func newPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return pool, nil
}

func newBot(cfg *config.Config, lg *zap.Logger) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}

	commands := []tgbotapi.BotCommand{
		{
			Command:     "quiz",
			Description: "Commencer un nouveau quiz",
		},
		{
			Command:     "help",
			Description: "Aide",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on telegram", zap.String("username", bot.Self.UserName))

	return bot, nil
}
