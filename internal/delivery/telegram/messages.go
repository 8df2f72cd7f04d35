package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

const (
	msgWelcome = "👋 Bienvenue !\n\n" +
		"Répondez aux questions en touchant une des options, puis passez à la suivante avec « Suivant ➡️ ».\n" +
		"Une question laissée sans réponse compte comme non répondue."
	msgHelp = "/quiz — commencer un nouveau quiz\n" +
		"/help — afficher cette aide"
	msgUnknownCommand       = "Commande inconnue.\n\n" + msgHelp
	msgQuestionsUnavailable = "Les questions sont indisponibles, réessayez plus tard."
	msgInternalError        = "Une erreur est survenue, réessayez plus tard."
	msgNoQuiz               = "Aucun quiz en cours. Tapez /quiz pour commencer."
	msgExpired              = "Cette question n'est plus affichée."
)

const (
	labelNext    = "Suivant ➡️"
	labelRestart = "🎓 Rejouer"
)

// esc escapes plain text for HTML parse mode.
func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func newHTMLEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	return edit
}

// formatCardMessage renders the stats header and the question of a card.
func formatCardMessage(pointer string, counters [3]int, card entities.CardView) string {
	var sb strings.Builder

	sb.WriteString("<b>")
	sb.WriteString(esc(pointer))
	sb.WriteString("</b>\n")
	sb.WriteString(formatCounters(counters))
	sb.WriteString("\n\n")
	sb.WriteString(esc(card.Question))

	return sb.String()
}

func formatCounters(counters [3]int) string {
	return fmt.Sprintf(
		"✅ %d   🔴 %d   ◽ %d",
		counters[entities.CounterCorrect],
		counters[entities.CounterIncorrect],
		counters[entities.CounterNotAnswered],
	)
}

func formatFinalMessage(final entities.FinalView) string {
	return fmt.Sprintf(
		"<b>Votre score final</b>\n\n%d ✅   %d ◽   %d 🔴",
		final.Correct,
		final.NotAnswered,
		final.Incorrect,
	)
}

// formatOptionLabel prefixes an option with its mark once the card is answered.
func formatOptionLabel(option entities.OptionView) string {
	switch option.Mark {
	case entities.MarkCorrect:
		return "✅ " + option.Text
	case entities.MarkWrong:
		return "🔴 " + option.Text
	default:
		return option.Text
	}
}
