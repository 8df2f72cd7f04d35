package service

import "github.com/aliskhannn/quizz/internal/domain/entities"

// Card is the interactive presentation of one question.
// It moves from unanswered to locked on the first click that lands on an option.
type Card struct {
	question  string
	options   []string
	answer    int // 1-based, before shuffling
	id        int
	isCorrect *bool

	rng      Rand
	rendered []entities.OptionView
	surface  Surface
	toast    *Toast
	locked   bool
}

// NewCard creates a card for a question displayed at position id.
func NewCard(question string, options []string, answer, id int, rng Rand) *Card {
	return &Card{
		question: question,
		options:  options,
		answer:   answer,
		id:       id,
		rng:      rng,
	}
}

func (c *Card) ID() int { return c.id }

// IsCorrect is nil until the card has been answered.
func (c *Card) IsCorrect() *bool {
	if c.isCorrect == nil {
		return nil
	}
	v := *c.isCorrect
	return &v
}

func (c *Card) Locked() bool { return c.locked }

// Generate renders the options, tags the one matching the answer and shuffles
// them together with their tag.
func (c *Card) Generate() entities.CardView {
	rendered := make([]entities.OptionView, 0, len(c.options))
	for i, o := range c.options {
		rendered = append(rendered, entities.OptionView{
			Text:    o,
			Correct: c.answer == i+1,
		})
	}

	c.rendered = Shuffle(c.rng, rendered)

	return c.view()
}

// Listen binds the card to the display it was drawn on. Clicks are ignored until then.
func (c *Card) Listen(surface Surface, toast *Toast) {
	c.surface = surface
	c.toast = toast
}

// Click handles a click on the rendered option at position; any other position
// stands for a click inside the card that missed every option.
// It reports whether the click locked the card.
func (c *Card) Click(position int) bool {
	if c.surface == nil || c.locked {
		return false
	}

	if position < 0 || position >= len(c.rendered) {
		return false
	}

	c.locked = true

	correct := c.rendered[position].Correct
	c.isCorrect = &correct

	if correct {
		c.mark(position, entities.MarkCorrect)
	} else {
		c.mark(position, entities.MarkWrong)
		if right := c.view().CorrectPosition(); right >= 0 {
			c.mark(right, entities.MarkCorrect)
		}
	}

	c.toast.Popup(correct)

	return true
}

func (c *Card) mark(position int, mark entities.Mark) {
	c.rendered[position].Mark = mark
	c.surface.MarkOption(c.id, position, mark)
}

func (c *Card) view() entities.CardView {
	return entities.CardView{
		ID:       c.id,
		Question: c.question,
		Options:  c.rendered,
	}.Clone()
}
