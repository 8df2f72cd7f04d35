package entities

// Mark is the visual state of a rendered option or of a toast.
type Mark string

const (
	MarkNone    Mark = ""
	MarkCorrect Mark = "correct"
	MarkWrong   Mark = "wrong"
)

// OptionView is one rendered option of a card.
// Correct is the tag that travels with the option through the shuffle.
type OptionView struct {
	Text    string `json:"text"`
	Correct bool   `json:"-"`
	Mark    Mark   `json:"mark,omitempty"`
}

// CardView is what a display surface needs to draw a card.
type CardView struct {
	ID       int          `json:"id"`
	Question string       `json:"question"`
	Options  []OptionView `json:"options"`
}

// Clone returns a deep copy so surfaces never share option slices with the card.
func (v CardView) Clone() CardView {
	options := make([]OptionView, len(v.Options))
	copy(options, v.Options)
	v.Options = options
	return v
}

// CorrectPosition returns the rendered position of the tagged option, or -1.
func (v CardView) CorrectPosition() int {
	for i, o := range v.Options {
		if o.Correct {
			return i
		}
	}
	return -1
}

// ToastView is a transient correctness notification.
type ToastView struct {
	Text string `json:"text"`
	Kind Mark   `json:"kind"`
}
