package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/domain/entities"
	"github.com/aliskhannn/quizz/internal/service"
)

// QuestionSource loads the full question set for one session.
type QuestionSource interface {
	FetchQuestions(ctx context.Context) ([]entities.Question, error)
}

// QuizUseCase boots sessions: every start is a fresh fetch followed by a new Quizz,
// which is what a page reload does.
type QuizUseCase struct {
	source QuestionSource
	rng    service.Rand
	logger *zap.Logger
}

func NewQuizUseCase(source QuestionSource, rng service.Rand, logger *zap.Logger) *QuizUseCase {
	return &QuizUseCase{source: source, rng: rng, logger: logger}
}

// Start fetches the questions and starts a quiz on surface.
func (u *QuizUseCase) Start(ctx context.Context, surface service.Surface) (*service.Quizz, error) {
	questions, err := u.source.FetchQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}

	u.logger.Debug("questions fetched", zap.Int("count", len(questions)))

	return service.NewQuizz(questions, surface, u.rng, u.logger)
}

type QuestionSeeder interface {
	Seed(ctx context.Context, questions []entities.Question) error
}

// SeedUseCase copies a question set from one source into the database.
type SeedUseCase struct {
	source QuestionSource
	seeder QuestionSeeder
	logger *zap.Logger
}

func NewSeedUseCase(source QuestionSource, seeder QuestionSeeder, logger *zap.Logger) *SeedUseCase {
	return &SeedUseCase{source: source, seeder: seeder, logger: logger}
}

// Seed returns the number of questions written.
func (u *SeedUseCase) Seed(ctx context.Context) (int, error) {
	questions, err := u.source.FetchQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch questions: %w", err)
	}

	if err := u.seeder.Seed(ctx, questions); err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}

	u.logger.Info("questions seeded", zap.Int("count", len(questions)))

	return len(questions), nil
}
