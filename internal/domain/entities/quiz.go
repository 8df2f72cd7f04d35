package entities

import "math"

// Counter identifies one of the three score regions.
type Counter int

const (
	CounterCorrect Counter = iota
	CounterIncorrect
	CounterNotAnswered
)

func (c Counter) String() string {
	switch c {
	case CounterCorrect:
		return "correct"
	case CounterIncorrect:
		return "wrong"
	case CounterNotAnswered:
		return "neutral"
	default:
		return "unknown"
	}
}

// maxNote is the top of the French 0..20 grading scale.
const maxNote = 20

// ScoreCounters tracks the outcome of every question advanced past.
type ScoreCounters struct {
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	NotAnswered int `json:"notAnswered"`
}

// Record classifies one finished question: nil means the user moved on without answering.
func (s *ScoreCounters) Record(correct *bool) {
	switch {
	case correct == nil:
		s.NotAnswered++
	case *correct:
		s.Correct++
	default:
		s.Incorrect++
	}
}

// Total is the number of questions recorded so far.
func (s ScoreCounters) Total() int {
	return s.Correct + s.Incorrect + s.NotAnswered
}

// FinalView is the end-of-quiz summary.
// Note is computed but the HTML summary only shows the raw counts.
type FinalView struct {
	Correct     int     `json:"correct"`
	NotAnswered int     `json:"notAnswered"`
	Incorrect   int     `json:"incorrect"`
	Note        float64 `json:"note"`
}

// Note grades a session on a 0..20 scale where wrong answers cancel right ones,
// rounded to two decimals.
func Note(correct, incorrect, total int) float64 {
	if total <= 0 {
		return 0
	}

	note := float64(correct-incorrect) * maxNote / float64(total)
	return math.Round((note+epsilon)*100) / 100
}

// epsilon is the gap between 1 and the next float64.
const epsilon = 2.220446049250313e-16
