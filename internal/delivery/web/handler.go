package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/aliskhannn/quizz/internal/domain/entities"
	"github.com/aliskhannn/quizz/internal/service"
	"github.com/aliskhannn/quizz/internal/storage"
)

const sessionCookie = "quizz_session"

//go:embed templates/page.html
var pageTemplate string

//go:embed static
var staticFS embed.FS

const msgQuestionsUnavailable = "Les questions sont indisponibles, réessayez plus tard."

type QuizStarter interface {
	Start(ctx context.Context, surface service.Surface) (*service.Quizz, error)
}

// Handler serves the quiz page and the page shell controls over HTTP.
type Handler struct {
	logger   *zap.Logger
	quiz     QuizStarter
	sessions *storage.SessionStore[*Page]
	tmpl     *template.Template
}

func NewHandler(logger *zap.Logger, quiz QuizStarter, sessions *storage.SessionStore[*Page]) (*Handler, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	return &Handler{
		logger:   logger,
		quiz:     quiz,
		sessions: sessions,
		tmpl:     tmpl,
	}, nil
}

// Routes returns the HTTP handler with every route mounted.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /cards/{id}/options/{position}", h.handleOption)
	mux.HandleFunc("POST /next", h.handleNext)
	mux.HandleFunc("POST /restart", h.handleRestart)
	mux.HandleFunc("GET /api/state", h.handleState)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return h.withLogging(mux)
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		if session, ok = h.startSession(w, r); !ok {
			return
		}
	}

	var buf bytes.Buffer
	var err error
	session.Do(func(_ *service.Quizz, page *Page) {
		err = h.tmpl.Execute(&buf, page)
	})
	if err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleOption is a click inside a card. Anything that is not a valid
// option position counts as a click next to the options.
func (h *Handler) handleOption(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	cardID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		cardID = -1
	}
	position, err := strconv.Atoi(r.PathValue("position"))
	if err != nil {
		position = -1
	}

	session.Do(func(q *service.Quizz, _ *Page) {
		if !q.Click(cardID, position) {
			h.logger.Debug("click ignored", zap.Int("card", cardID), zap.Int("position", position))
		}
	})

	h.respond(w, r, session)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	cardID, err := strconv.Atoi(r.FormValue("card"))
	if err != nil {
		http.Error(w, "invalid card", http.StatusBadRequest)
		return
	}

	session.Do(func(q *service.Quizz, _ *Page) {
		err = q.Advance(cardID)
	})
	if err != nil {
		if !errors.Is(err, service.ErrStaleCard) && !errors.Is(err, service.ErrQuizFinished) {
			h.logger.Error("failed to advance quiz", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.logger.Debug("next ignored", zap.Int("card", cardID), zap.Error(err))
	}

	h.respond(w, r, session)
}

// handleRestart is the replay control: the whole session is rebuilt from a
// fresh fetch, as a page reload would.
func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		h.sessions.Delete(c.Value)
	}

	session, ok := h.startSession(w, r)
	if !ok {
		return
	}

	h.respond(w, r, session)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(r)
	if !ok {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}

	h.writeState(w, session)
}

func (h *Handler) session(r *http.Request) (*storage.Session[*Page], bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(c.Value)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request) (*storage.Session[*Page], bool) {
	page := NewPage()

	q, err := h.quiz.Start(r.Context(), page)
	if err != nil {
		h.logger.Error("failed to start quiz", zap.Error(err))
		http.Error(w, msgQuestionsUnavailable, http.StatusServiceUnavailable)
		return nil, false
	}

	id := storage.NewID()
	session := storage.NewSession(q, page)
	h.sessions.Store(id, session)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Debug("session started", zap.String("session_id", id))

	return session, true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, session *storage.Session[*Page]) {
	if wantsJSON(r) {
		h.writeState(w, session)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) writeState(w http.ResponseWriter, session *storage.Session[*Page]) {
	var state stateResponse
	session.Do(func(q *service.Quizz, page *Page) {
		state = newStateResponse(q, page)
	})

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(state); err != nil {
		h.logger.Error("failed to encode state", zap.Error(err))
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

type stateResponse struct {
	Pointer  string                 `json:"pointer"`
	Current  int                    `json:"current"`
	Total    int                    `json:"total"`
	Finished bool                   `json:"finished"`
	Score    entities.ScoreCounters `json:"score"`
	Card     *entities.CardView     `json:"card,omitempty"`
	Answered *bool                  `json:"answered,omitempty"`
	Toast    *entities.ToastView    `json:"toast,omitempty"`
	Final    *entities.FinalView    `json:"final,omitempty"`
}

func newStateResponse(q *service.Quizz, page *Page) stateResponse {
	state := stateResponse{
		Pointer:  page.Pointer,
		Current:  q.Current(),
		Total:    q.Total(),
		Finished: q.Finished(),
		Score: entities.ScoreCounters{
			Correct:     page.Counters[entities.CounterCorrect],
			Incorrect:   page.Counters[entities.CounterIncorrect],
			NotAnswered: page.Counters[entities.CounterNotAnswered],
		},
		Toast: page.Toast,
		Final: page.Final,
	}

	if page.Card != nil {
		card := page.Card.Clone()
		state.Card = &card
	}
	if c := q.CurrentCard(); c != nil && !q.Finished() {
		state.Answered = c.IsCorrect()
	}

	return state
}
