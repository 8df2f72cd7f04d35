package service

import "github.com/aliskhannn/quizz/internal/domain/entities"

// Score renders the three running counters.
type Score struct {
	surface Surface
}

func NewScore(surface Surface) *Score {
	return &Score{surface: surface}
}

// SetScore replaces all three counter regions.
func (s *Score) SetScore(correct, incorrect, notAnswered int) {
	s.surface.SetCounter(entities.CounterCorrect, correct)
	s.surface.SetCounter(entities.CounterIncorrect, incorrect)
	s.surface.SetCounter(entities.CounterNotAnswered, notAnswered)
}
