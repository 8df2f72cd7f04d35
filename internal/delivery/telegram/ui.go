package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

// buildCardKeyboard builds one row per option followed by the "next" control.
func buildCardKeyboard(card entities.CardView) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(card.Options)+1)
	for i, o := range card.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(formatOptionLabel(o), buildOptionCallback(card.ID, i)),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(labelNext, buildNextCallback(card.ID)),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildFinalKeyboard builds keyboard for the final score screen.
func buildFinalKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(labelRestart, buildRestartCallback()),
		),
	)
}

func keyboardSignature(kb *tgbotapi.InlineKeyboardMarkup) string {
	if kb == nil {
		return ""
	}

	var sig []byte
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			sig = append(sig, b.Text...)
			sig = append(sig, '|')
			if b.CallbackData != nil {
				sig = append(sig, *b.CallbackData...)
			}
			sig = append(sig, ';')
		}
		sig = append(sig, '\n')
	}
	return string(sig)
}
