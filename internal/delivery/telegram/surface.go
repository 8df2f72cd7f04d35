package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hashicorp/go-multierror"

	"github.com/aliskhannn/quizz/internal/domain/entities"
)

// ChatSurface renders a quiz into a Telegram chat.
// Changes are buffered and pushed to the chat by Flush: the card lives in a
// single message edited in place, the toast is its own message and the final
// score is sent once.
type ChatSurface struct {
	chatID int64

	pointer  string
	counters [3]int
	card     *entities.CardView
	toast    *entities.ToastView
	final    *entities.FinalView

	toastChanged   bool
	cardMessageID  int
	cardRendered   string
	toastMessageID int
	finalMessageID int
}

func NewChatSurface(chatID int64) *ChatSurface {
	return &ChatSurface{chatID: chatID}
}

func (s *ChatSurface) ShowCard(card entities.CardView) {
	c := card.Clone()
	s.card = &c
}

func (s *ChatSurface) MarkOption(cardID, position int, mark entities.Mark) {
	if s.card == nil || s.card.ID != cardID {
		return
	}
	if position < 0 || position >= len(s.card.Options) {
		return
	}
	s.card.Options[position].Mark = mark
}

func (s *ChatSurface) SetQuestionPointer(text string) {
	s.pointer = text
}

func (s *ChatSurface) SetCounter(counter entities.Counter, value int) {
	if counter < 0 || int(counter) >= len(s.counters) {
		return
	}
	s.counters[counter] = value
}

func (s *ChatSurface) ShowToast(toast entities.ToastView) {
	s.toast = &toast
	s.toastChanged = true
}

func (s *ChatSurface) RemoveToast() bool {
	if s.toast == nil {
		return false
	}
	s.toast = nil
	s.toastChanged = true
	return true
}

func (s *ChatSurface) ShowFinal(final entities.FinalView) {
	s.final = &final
}

// CardMessageID is the message holding the card, 0 before the first Flush.
func (s *ChatSurface) CardMessageID() int { return s.cardMessageID }

// FinalMessageID is the message holding the final score, 0 until it is sent.
func (s *ChatSurface) FinalMessageID() int { return s.finalMessageID }

// Flush pushes the buffered state to the chat.
func (s *ChatSurface) Flush(bot botAPI) error {
	var result *multierror.Error

	if s.toastChanged && s.toastMessageID != 0 {
		if _, err := bot.Request(tgbotapi.NewDeleteMessage(s.chatID, s.toastMessageID)); err != nil {
			result = multierror.Append(result, fmt.Errorf("delete toast: %w", err))
		}
		s.toastMessageID = 0
	}

	if err := s.flushCard(bot); err != nil {
		result = multierror.Append(result, err)
	}

	if s.toastChanged && s.toast != nil {
		sent, err := bot.Send(tgbotapi.NewMessage(s.chatID, s.toast.Text))
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("send toast: %w", err))
		} else {
			s.toastMessageID = sent.MessageID
		}
	}
	s.toastChanged = false

	if s.final != nil && s.finalMessageID == 0 {
		msg := newHTMLMessage(s.chatID, formatFinalMessage(*s.final))
		msg.ReplyMarkup = buildFinalKeyboard()

		sent, err := bot.Send(msg)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("send final score: %w", err))
		} else {
			s.finalMessageID = sent.MessageID
		}
	}

	return result.ErrorOrNil()
}

// flushCard sends the card message or edits it when its content changed.
// Once the quiz is over the keyboard is dropped.
func (s *ChatSurface) flushCard(bot botAPI) error {
	if s.card == nil {
		return nil
	}

	text := formatCardMessage(s.pointer, s.counters, *s.card)

	var kb *tgbotapi.InlineKeyboardMarkup
	if s.final == nil {
		k := buildCardKeyboard(*s.card)
		kb = &k
	}

	rendered := text + "\x00" + keyboardSignature(kb)
	if rendered == s.cardRendered {
		return nil
	}

	if s.cardMessageID == 0 {
		msg := newHTMLMessage(s.chatID, text)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}

		sent, err := bot.Send(msg)
		if err != nil {
			return fmt.Errorf("send card: %w", err)
		}
		s.cardMessageID = sent.MessageID
	} else {
		edit := newHTMLEdit(s.chatID, s.cardMessageID, text)
		edit.ReplyMarkup = kb

		if _, err := bot.Send(edit); err != nil {
			return fmt.Errorf("edit card: %w", err)
		}
	}

	s.cardRendered = rendered

	return nil
}
