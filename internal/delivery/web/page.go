package web

import "github.com/aliskhannn/quizz/internal/domain/entities"

// Page is the server-side model of the quiz page: the regions the quiz
// writes into, rendered to HTML or JSON on demand.
type Page struct {
	Pointer  string
	Counters [3]int
	Card     *entities.CardView
	Toast    *entities.ToastView
	Final    *entities.FinalView
}

func NewPage() *Page {
	return &Page{}
}

func (p *Page) ShowCard(card entities.CardView) {
	c := card.Clone()
	p.Card = &c
}

func (p *Page) MarkOption(cardID, position int, mark entities.Mark) {
	if p.Card == nil || p.Card.ID != cardID {
		return
	}
	if position < 0 || position >= len(p.Card.Options) {
		return
	}
	p.Card.Options[position].Mark = mark
}

func (p *Page) SetQuestionPointer(text string) {
	p.Pointer = text
}

func (p *Page) SetCounter(counter entities.Counter, value int) {
	if counter < 0 || int(counter) >= len(p.Counters) {
		return
	}
	p.Counters[counter] = value
}

func (p *Page) ShowToast(toast entities.ToastView) {
	p.Toast = &toast
}

func (p *Page) RemoveToast() bool {
	if p.Toast == nil {
		return false
	}
	p.Toast = nil
	return true
}

func (p *Page) ShowFinal(final entities.FinalView) {
	p.Final = &final
}
