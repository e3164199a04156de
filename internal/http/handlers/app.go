package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pitchdeck/internal/deck"
)

// App holds what the HTTP handlers need to present the deck.
type App struct {
	Deck     *deck.Deck
	Provider string
	Model    string
	Logger   zerolog.Logger
}

func NewApp(d *deck.Deck, provider, model string, logger zerolog.Logger) *App {
	return &App{Deck: d, Provider: provider, Model: model, Logger: logger}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// slideIndex parses the {index} URL parameter and writes a 400 or 404 when it
// does not name a slide.
func (a *App) slideIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "slide index must be an integer")
		return 0, false
	}
	if idx < 0 || idx >= a.Deck.Len() {
		a.error(w, http.StatusNotFound, "not_found", "slide not found")
		return 0, false
	}
	return idx, true
}

// deckError maps deck errors to responses.
func (a *App) deckError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, deck.ErrSlideOutOfRange):
		a.error(w, http.StatusNotFound, "not_found", "slide not found")
	case errors.Is(err, deck.ErrClosed):
		a.error(w, http.StatusServiceUnavailable, "unavailable", "deck is shutting down")
	default:
		a.log(r).Error().Err(err).Msg("deck operation failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// log returns the request-scoped logger set by the RequestID middleware, or
// the app logger outside it.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}
