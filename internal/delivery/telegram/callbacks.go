package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	var answer string
	defer func() {
		h.answerCallback(cb.ID, answer)
	}()

	if cb.Message == nil || cb.Message.Chat == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionOption:
		answer = h.handleOptionCallback(chatID, messageID, data)
	case actionNext:
		answer = h.handleNextCallback(chatID, messageID, data)
	case actionRestart:
		answer = h.handleRestartCallback(ctx, chatID, messageID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}

// handleOptionCallback is a click inside the card. Buttons of any message but
// the one holding the displayed card are stale.
func (h *Handler) handleOptionCallback(chatID int64, messageID int, data callbackData) string {
	cardID, ok1 := data.intParam(0)
	position, ok2 := data.intParam(1)
	if !ok1 || !ok2 {
		h.logger.Debug("invalid option callback", zap.String("data", data.Raw))
		return ""
	}

	session, ok := h.sessions.Get(sessionKey(chatID))
	if !ok {
		return msgNoQuiz
	}

	var answer string
	session.Do(func(q *service.Quizz, surface *ChatSurface) {
		if surface.CardMessageID() != messageID {
			answer = msgExpired
			return
		}

		if !q.Click(cardID, position) {
			h.logger.Debug("click ignored",
				zap.Int64("chat_id", chatID),
				zap.Int("card", cardID),
				zap.Int("position", position),
			)
			return
		}

		h.flush(chatID, surface)
	})

	return answer
}

func (h *Handler) handleNextCallback(chatID int64, messageID int, data callbackData) string {
	cardID, ok := data.intParam(0)
	if !ok {
		h.logger.Debug("invalid next callback", zap.String("data", data.Raw))
		return ""
	}

	session, ok := h.sessions.Get(sessionKey(chatID))
	if !ok {
		return msgNoQuiz
	}

	var answer string
	session.Do(func(q *service.Quizz, surface *ChatSurface) {
		if surface.CardMessageID() != messageID {
			answer = msgExpired
			return
		}

		if err := q.Advance(cardID); err != nil {
			h.logger.Debug("next ignored",
				zap.Int64("chat_id", chatID),
				zap.Int("card", cardID),
				zap.Error(err),
			)
			answer = msgExpired
			return
		}

		h.flush(chatID, surface)
	})

	return answer
}

// handleRestartCallback replays from the final score message of the current
// quiz, or from any message once the chat has no quiz left.
func (h *Handler) handleRestartCallback(ctx context.Context, chatID int64, messageID int) string {
	if session, ok := h.sessions.Get(sessionKey(chatID)); ok {
		var current bool
		session.Do(func(_ *service.Quizz, surface *ChatSurface) {
			current = surface.FinalMessageID() == messageID
		})
		if !current {
			return msgExpired
		}
	}

	_ = h.withErrorHandling(h.handleQuiz())(ctx, chatID)

	return ""
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Error("failed to answer callback",
			zap.String("callback_id", id),
			zap.Error(err),
		)
	}
}
