package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

func newTestQuizz(t *testing.T, questions []entities.Question) (*Quizz, *fakeSurface) {
	t.Helper()

	surface := newFakeSurface()
	q, err := NewQuizz(questions, surface, seeded(), zap.NewNop())
	require.NoError(t, err)

	return q, surface
}

func answer(t *testing.T, q *Quizz, surface *fakeSurface, correct bool) {
	t.Helper()

	right := surface.card.CorrectPosition()
	require.GreaterOrEqual(t, right, 0)

	pos := right
	if !correct {
		pos = (right + 1) % len(surface.card.Options)
	}
	require.True(t, q.Click(surface.card.ID, pos))
}

func checkInvariant(t *testing.T, q *Quizz) {
	t.Helper()

	c := q.Counters()
	assert.Equal(t, q.Current(), c.Correct+c.Incorrect+c.NotAnswered)
	assert.LessOrEqual(t, q.Current(), q.Total())
}

func TestNewQuizz_RejectsInvalidQuestions(t *testing.T) {
	_, err := NewQuizz(nil, newFakeSurface(), seeded(), zap.NewNop())
	assert.ErrorIs(t, err, entities.ErrNoQuestions)

	_, err = NewQuizz([]entities.Question{{Question: "A", Choices: []string{"a"}, Answer: 1}}, newFakeSurface(), nil, nil)
	assert.ErrorIs(t, err, entities.ErrOptionsCount)
}

func TestQuizz_Start(t *testing.T) {
	q, surface := newTestQuizz(t, sampleQuestions())

	assert.Equal(t, "Question 1 / 2", surface.pointer)
	assert.Equal(t, map[entities.Counter]int{
		entities.CounterCorrect:     0,
		entities.CounterIncorrect:   0,
		entities.CounterNotAnswered: 0,
	}, surface.counters)
	require.NotNil(t, surface.card)
	assert.Equal(t, 0, surface.card.ID)
	assert.Equal(t, 0, q.Current())
	assert.False(t, q.Finished())
	assert.Nil(t, q.Final())
	checkInvariant(t, q)
}

func TestQuizz_OneCorrectOneWrong(t *testing.T) {
	q, surface := newTestQuizz(t, sampleQuestions())

	answer(t, q, surface, true)
	require.NoError(t, q.Advance(0))
	checkInvariant(t, q)
	assert.Equal(t, "Question 2 / 2", surface.pointer)
	assert.Equal(t, 1, surface.card.ID)

	answer(t, q, surface, false)
	require.NoError(t, q.Advance(1))
	checkInvariant(t, q)

	assert.True(t, q.Finished())
	assert.Equal(t, entities.ScoreCounters{Correct: 1, Incorrect: 1}, q.Counters())
	require.NotNil(t, surface.final)
	assert.Equal(t, entities.FinalView{Correct: 1, Incorrect: 1, NotAnswered: 0, Note: 0}, *surface.final)
	assert.Nil(t, surface.toast)
}

func TestQuizz_SkipSingleQuestion(t *testing.T) {
	q, surface := newTestQuizz(t, sampleQuestions()[:1])

	require.NoError(t, q.Next(q.CurrentCard().IsCorrect()))

	assert.True(t, q.Finished())
	assert.Equal(t, entities.ScoreCounters{NotAnswered: 1}, q.Counters())
	assert.Equal(t, 1, surface.counters[entities.CounterNotAnswered])
	require.NotNil(t, surface.final)
	assert.Equal(t, 1, surface.final.NotAnswered)
	checkInvariant(t, q)
}

func TestQuizz_NextAfterFinishIsRejected(t *testing.T) {
	q, surface := newTestQuizz(t, sampleQuestions()[:1])
	require.NoError(t, q.Next(nil))

	assert.ErrorIs(t, q.Next(nil), ErrQuizFinished)
	assert.ErrorIs(t, q.Advance(0), ErrQuizFinished)
	assert.Equal(t, 1, q.Current())
	assert.Equal(t, 1, surface.counters[entities.CounterNotAnswered])
	assert.False(t, q.Click(0, 0))
}

func TestQuizz_StaleAdvanceIsIgnored(t *testing.T) {
	q, _ := newTestQuizz(t, sampleQuestions())

	require.NoError(t, q.Advance(0))
	err := q.Advance(0)

	assert.ErrorIs(t, err, ErrStaleCard)
	assert.Equal(t, 1, q.Current())
	checkInvariant(t, q)
}

func TestQuizz_ClickOnOtherCardIsIgnored(t *testing.T) {
	q, surface := newTestQuizz(t, sampleQuestions())

	assert.False(t, q.Click(5, 0))
	assert.False(t, q.CurrentCard().Locked())
	assert.Empty(t, surface.marks)
}

func TestQuizz_EveryQuestionShownOnce(t *testing.T) {
	questions := make([]entities.Question, 0, 12)
	for i := 0; i < 12; i++ {
		questions = append(questions, entities.Question{
			Question: fmt.Sprintf("Q%d", i),
			Choices:  []string{"a", "b", "c", "d"},
			Answer:   i%4 + 1,
		})
	}

	q, surface := newTestQuizz(t, questions)

	for !q.Finished() {
		switch q.Current() % 3 {
		case 0:
			answer(t, q, surface, true)
		case 1:
			answer(t, q, surface, false)
		}
		require.NoError(t, q.Advance(q.CurrentCard().ID()))
		checkInvariant(t, q)
	}

	seen := make([]string, 0, len(surface.cards))
	for i, c := range surface.cards {
		assert.Equal(t, i, c.ID)
		seen = append(seen, c.Question)
	}

	want := make([]string, 0, len(questions))
	for _, question := range questions {
		want = append(want, question.Question)
	}

	assert.Len(t, seen, len(questions))
	assert.ElementsMatch(t, want, seen)
	assert.Equal(t, entities.ScoreCounters{Correct: 4, Incorrect: 4, NotAnswered: 4}, q.Counters())
}

func TestQuizz_CardMatchesQuestion(t *testing.T) {
	q, surface := newTestQuizz(t, sampleQuestions())

	for !q.Finished() {
		question := q.Order()[q.Current()]
		right := surface.card.CorrectPosition()

		assert.Equal(t, question.Question, surface.card.Question)
		assert.Equal(t, question.Choices[question.Answer-1], surface.card.Options[right].Text)

		require.NoError(t, q.Advance(surface.card.ID))
	}
}

func TestQuizz_FinalScoreNote(t *testing.T) {
	questions := make([]entities.Question, 0, 5)
	for i := 0; i < 5; i++ {
		questions = append(questions, entities.Question{
			Question: fmt.Sprintf("Q%d", i),
			Choices:  []string{"a", "b", "c", "d"},
			Answer:   1,
		})
	}

	q, surface := newTestQuizz(t, questions)
	outcomes := []int{1, 1, 1, 0, -1} // 1 right, 0 wrong, -1 skipped

	for _, o := range outcomes {
		if o >= 0 {
			answer(t, q, surface, o == 1)
		}
		require.NoError(t, q.Advance(q.CurrentCard().ID()))
	}

	require.NotNil(t, q.Final())
	assert.InDelta(t, 8.0, q.Final().Note, 1e-9)
	assert.Equal(t, 3, q.Final().Correct)
	assert.Equal(t, 1, q.Final().Incorrect)
	assert.Equal(t, 1, q.Final().NotAnswered)
}

func TestQuizz_AdvanceClearsToast(t *testing.T) {
	q, surface := newTestQuizz(t, sampleQuestions())

	answer(t, q, surface, true)
	require.NotNil(t, surface.toast)

	require.NoError(t, q.Advance(0))
	assert.Nil(t, surface.toast)
}

func TestQuizz_OrderIsPermutation(t *testing.T) {
	questions := sampleQuestions()
	q, _ := newTestQuizz(t, questions)

	assert.ElementsMatch(t, questions, q.Order())
	assert.Equal(t, sampleQuestions(), questions)
}
