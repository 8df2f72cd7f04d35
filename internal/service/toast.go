package service

import "github.com/aliskhannn/quizz/internal/domain/entities"

const (
	toastCorrect = "✅ Bonne réponse"
	toastWrong   = "🔴 Mauvaise réponse"
)

// Toast shows the outcome of the last answer until it is removed or replaced.
type Toast struct {
	surface Surface
}

func NewToast(surface Surface) *Toast {
	return &Toast{surface: surface}
}

// Popup replaces any displayed toast with the outcome of an answer.
func (t *Toast) Popup(correct bool) {
	view := entities.ToastView{Text: toastWrong, Kind: entities.MarkWrong}
	if correct {
		view = entities.ToastView{Text: toastCorrect, Kind: entities.MarkCorrect}
	}

	t.surface.RemoveToast()
	t.surface.ShowToast(view)
}

// Unpop removes the toast if one is displayed.
func (t *Toast) Unpop() {
	t.surface.RemoveToast()
}
