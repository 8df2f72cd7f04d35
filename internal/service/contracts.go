package service

import "github.com/aliskhannn/quizz/internal/domain/entities"

// Surface is the display a quiz renders into.
// Implementations are driven from a single goroutine per session.
type Surface interface {
	// ShowCard clears the main container and draws the card.
	ShowCard(card entities.CardView)
	// MarkOption tags one rendered option of the card with the given id.
	MarkOption(cardID, position int, mark entities.Mark)
	SetQuestionPointer(text string)
	SetCounter(counter entities.Counter, value int)
	ShowToast(toast entities.ToastView)
	// RemoveToast reports whether a toast was displayed.
	RemoveToast() bool
	ShowFinal(final entities.FinalView)
}

// Rand is the randomness the shuffles draw from.
type Rand interface {
	IntN(n int) int
}
