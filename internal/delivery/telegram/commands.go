package telegram

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/service"
	"github.com/aliskhannn/quizz/internal/storage"
)

// handleQuiz starts a new quiz in the chat from a fresh fetch. A running quiz
// is dropped and its toast removed.
func (h *Handler) handleQuiz() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		key := sessionKey(chatID)

		if old, ok := h.sessions.Get(key); ok {
			h.sessions.Delete(key)
			old.Do(func(_ *service.Quizz, surface *ChatSurface) {
				if surface.RemoveToast() {
					h.flush(chatID, surface)
				}
			})
		}

		surface := NewChatSurface(chatID)

		q, err := h.quiz.Start(ctx, surface)
		if err != nil {
			h.logger.Error("failed to start quiz",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgQuestionsUnavailable)
			return nil
		}

		session := storage.NewSession(q, surface)
		h.sessions.Store(key, session)

		h.logger.Debug("quiz started",
			zap.Int64("chat_id", chatID),
			zap.Int("total", q.Total()),
		)

		var flushErr error
		session.Do(func(_ *service.Quizz, s *ChatSurface) {
			flushErr = s.Flush(h.bot)
		})
		if flushErr != nil {
			return fmt.Errorf("render quiz: %w", flushErr)
		}

		return nil
	}
}

func (h *Handler) flush(chatID int64, surface *ChatSurface) {
	if err := surface.Flush(h.bot); err != nil {
		h.logger.Error("failed to render quiz",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
