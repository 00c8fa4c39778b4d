package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"promisecard/internal/domain"
	"promisecard/internal/engine"
	"promisecard/internal/infra"
	"promisecard/internal/middleware"
)

// App is the handler container. SQL is the optional write-behind journal
// executor; when nil, accepted operations are simply not journaled.
//
// The engine expects its callers to serialize operations, so every handler
// takes mu around engine calls. Nested calls the engine makes into the
// transfer adapter run on the same goroutine and never touch mu.
type App struct {
	mu     sync.Mutex
	Engine *engine.Engine
	SQL    infra.SQLExecutor
	Logger zerolog.Logger
}

func NewApp(eng *engine.Engine, sql infra.SQLExecutor, logger zerolog.Logger) *App {
	return &App{Engine: eng, SQL: sql, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]any{"error": map[string]string{"code": code, "message": message}})
}

// caller returns the authenticated caller principal for the request.
func (a *App) caller(r *http.Request) string {
	return middleware.PrincipalFromContext(r.Context())
}

// engineError translates the engine's sentinel errors to HTTP responses.
func (a *App) engineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrAlreadyFulfilled):
		a.error(w, http.StatusConflict, "already_fulfilled", err.Error())
	case errors.Is(err, domain.ErrNotFulfilled):
		a.error(w, http.StatusConflict, "not_fulfilled", err.Error())
	case errors.Is(err, domain.ErrCooldown):
		a.error(w, http.StatusTooManyRequests, "cooldown", err.Error())
	case errors.Is(err, domain.ErrInsufficientFaucetReserve):
		a.error(w, http.StatusBadGateway, "insufficient_faucet_reserve", err.Error())
	case errors.Is(err, domain.ErrTransferFailed):
		a.error(w, http.StatusBadGateway, "transfer_failed", err.Error())
	case errors.Is(err, domain.ErrAssetMismatch):
		a.error(w, http.StatusBadRequest, "asset_mismatch", err.Error())
	case errors.Is(err, domain.ErrValueMismatch):
		a.error(w, http.StatusBadRequest, "value_mismatch", err.Error())
	case errors.Is(err, domain.ErrOverflow):
		a.error(w, http.StatusBadRequest, "overflow", err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", err.Error())
	default:
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
