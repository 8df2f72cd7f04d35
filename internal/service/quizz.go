package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

var (
	ErrQuizFinished = errors.New("quiz is finished")
	ErrStaleCard    = errors.New("card is no longer displayed")
)

// Quizz drives one session: it owns the shuffled questions, the cursor,
// the counters and the card currently on display.
type Quizz struct {
	questions []entities.Question
	shuffled  []entities.Question
	current   int
	counters  entities.ScoreCounters

	surface Surface
	score   *Score
	toast   *Toast
	card    *Card
	final   *entities.FinalView

	rng    Rand
	logger *zap.Logger
}

// NewQuizz validates the questions and starts a session on surface.
func NewQuizz(questions []entities.Question, surface Surface, rng Rand, logger *zap.Logger) (*Quizz, error) {
	if err := entities.ValidateQuestions(questions); err != nil {
		return nil, fmt.Errorf("new quizz: %w", err)
	}

	if rng == nil {
		rng = DefaultRand
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	q := &Quizz{
		questions: questions,
		surface:   surface,
		score:     NewScore(surface),
		toast:     NewToast(surface),
		rng:       rng,
		logger:    logger,
	}
	q.Start()

	return q, nil
}

// Start shuffles the questions, zeroes the counters and shows the first card.
func (q *Quizz) Start() {
	q.shuffled = Shuffled(q.rng, q.questions)
	q.current = 0
	q.counters = entities.ScoreCounters{}
	q.final = nil

	q.score.SetScore(0, 0, 0)
	q.surface.SetQuestionPointer(q.pointer())
	q.PopQuestion()

	q.logger.Debug("quiz started", zap.Int("total", len(q.shuffled)))
}

// PopQuestion displays the question at the cursor on a fresh card.
func (q *Quizz) PopQuestion() {
	question := q.shuffled[q.current]
	q.surface.SetQuestionPointer(q.pointer())

	card := NewCard(question.Question, question.Choices, question.Answer, q.current, q.rng)
	q.card = card
	q.surface.ShowCard(card.Generate())
	card.Listen(q.surface, q.toast)
}

// Next records the outcome of the displayed question and moves on.
// A nil correct means the user skipped it.
func (q *Quizz) Next(correct *bool) error {
	if q.Finished() {
		return ErrQuizFinished
	}

	q.current++
	q.counters.Record(correct)
	q.score.SetScore(q.counters.Correct, q.counters.Incorrect, q.counters.NotAnswered)

	if q.current == len(q.shuffled) {
		q.FinalScore()
		return nil
	}

	q.PopQuestion()

	return nil
}

// FinalScore grades the session and shows the summary with the replay control.
func (q *Quizz) FinalScore() entities.FinalView {
	final := entities.FinalView{
		Correct:     q.counters.Correct,
		NotAnswered: q.counters.NotAnswered,
		Incorrect:   q.counters.Incorrect,
		Note:        entities.Note(q.counters.Correct, q.counters.Incorrect, len(q.shuffled)),
	}
	q.final = &final
	q.surface.ShowFinal(final)

	q.logger.Info("quiz finished",
		zap.Int("correct", final.Correct),
		zap.Int("incorrect", final.Incorrect),
		zap.Int("not_answered", final.NotAnswered),
		zap.Float64("note", final.Note),
	)

	return final
}

// Click forwards a click to the displayed card when cardID still designates it.
func (q *Quizz) Click(cardID, position int) bool {
	if q.card == nil || q.card.ID() != cardID || q.Finished() {
		return false
	}
	return q.card.Click(position)
}

// Advance is what the "next" control does: record the displayed card's
// outcome and clear the toast. Requests issued for an older card are rejected
// so a double click cannot skip a question.
func (q *Quizz) Advance(cardID int) error {
	if q.Finished() {
		return ErrQuizFinished
	}

	if q.card == nil || q.card.ID() != cardID {
		return fmt.Errorf("%w: card %d", ErrStaleCard, cardID)
	}

	if err := q.Next(q.card.IsCorrect()); err != nil {
		return err
	}
	q.toast.Unpop()

	return nil
}

func (q *Quizz) CurrentCard() *Card { return q.card }

func (q *Quizz) Current() int { return q.current }

func (q *Quizz) Total() int { return len(q.shuffled) }

func (q *Quizz) Counters() entities.ScoreCounters { return q.counters }

func (q *Quizz) Finished() bool { return q.current >= len(q.shuffled) }

// Final is nil until the session is over.
func (q *Quizz) Final() *entities.FinalView { return q.final }

func (q *Quizz) Toast() *Toast { return q.toast }

// Order returns the questions in the order they are presented.
func (q *Quizz) Order() []entities.Question {
	out := make([]entities.Question, len(q.shuffled))
	copy(out, q.shuffled)
	return out
}

func (q *Quizz) pointer() string {
	return fmt.Sprintf("Question %d / %d", q.current+1, len(q.shuffled))
}
