package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"patronage/internal/domain"
	"patronage/internal/ledger"
)

// App bundles the dependencies the HTTP handlers need.
type App struct {
	Ledger *ledger.Ledger
	Log    zerolog.Logger
}

func NewApp(l *ledger.Ledger, log zerolog.Logger) *App {
	return &App{Ledger: l, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, msg string) {
	a.json(w, code, map[string]string{"error": errCode, "message": msg})
}

// fail maps ledger errors onto HTTP responses. Anything that is not a known
// domain error counts as a store failure and surfaces as a 500.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var unknown domain.UnknownProjectError
	var payment domain.PaymentError
	switch {
	case errors.As(err, &unknown):
		a.error(w, http.StatusNotFound, "unknown_project", unknown.Error())
	case errors.As(err, &payment):
		a.error(w, http.StatusBadRequest, "payment_invalid", payment.Error())
	case errors.Is(err, domain.ErrNotInitialized):
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("ledger not initialized")
		a.error(w, http.StatusServiceUnavailable, "not_initialized", "ledger is not initialized")
	default:
		a.Log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
