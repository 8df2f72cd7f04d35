package service

import (
	"math/rand/v2"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

// fakeSurface records what the components draw.
type fakeSurface struct {
	card     *entities.CardView
	cards    []entities.CardView
	marks    []markCall
	pointer  string
	counters map[entities.Counter]int
	toast    *entities.ToastView
	toasts   []entities.ToastView
	removals int
	final    *entities.FinalView
}

type markCall struct {
	cardID, position int
	mark             entities.Mark
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{counters: make(map[entities.Counter]int)}
}

func (f *fakeSurface) ShowCard(card entities.CardView) {
	c := card.Clone()
	f.card = &c
	f.cards = append(f.cards, c)
}

func (f *fakeSurface) MarkOption(cardID, position int, mark entities.Mark) {
	f.marks = append(f.marks, markCall{cardID: cardID, position: position, mark: mark})
	if f.card != nil && f.card.ID == cardID {
		f.card.Options[position].Mark = mark
	}
}

func (f *fakeSurface) SetQuestionPointer(text string) { f.pointer = text }

func (f *fakeSurface) SetCounter(counter entities.Counter, value int) { f.counters[counter] = value }

func (f *fakeSurface) ShowToast(toast entities.ToastView) {
	f.toast = &toast
	f.toasts = append(f.toasts, toast)
}

func (f *fakeSurface) RemoveToast() bool {
	if f.toast == nil {
		return false
	}
	f.toast = nil
	f.removals++
	return true
}

func (f *fakeSurface) ShowFinal(final entities.FinalView) { f.final = &final }

func seeded() Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func sampleQuestions() []entities.Question {
	return []entities.Question{
		{Question: "A", Choices: []string{"a", "b", "c", "d"}, Answer: 2},
		{Question: "B", Choices: []string{"e", "f", "g", "h"}, Answer: 4},
	}
}
