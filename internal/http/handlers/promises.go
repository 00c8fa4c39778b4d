package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"promisecard/internal/domain"
	"promisecard/internal/engine"
	"promisecard/internal/sqlinline"
)

var categoryTitle = cases.Title(language.English)

type promiseRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	MediaRef        string `json:"media_ref"`
	Asset           string `json:"asset"`
	AmountRequested uint64 `json:"amount_requested"`
	Visible         bool   `json:"visible"`
}

func (a *App) PromisesCreate(w http.ResponseWriter, r *http.Request) {
	var req promiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Asset == "" {
		req.Asset = domain.AssetNative
	}
	req.Category = categoryTitle.String(strings.ToLower(strings.TrimSpace(req.Category)))

	caller := a.caller(r)
	a.mu.Lock()
	id, err := a.Engine.Create(caller, engine.CreateParams{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		MediaRef:        req.MediaRef,
		Asset:           req.Asset,
		AmountRequested: req.AmountRequested,
		Visible:         req.Visible,
	})
	a.mu.Unlock()
	if err != nil {
		a.engineError(w, err)
		return
	}

	if a.SQL != nil {
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QInsertPromise,
			id, caller, req.Title, req.Description, req.Category, req.MediaRef,
			req.Asset, req.AmountRequested, req.Visible); err != nil {
			a.Logger.Error().Err(err).Uint64("promise", id).Msg("journal promise insert failed")
		}
	}

	a.json(w, http.StatusCreated, map[string]any{"id": id})
}

func (a *App) PromisesGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promiseID(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	p, err := a.Engine.Get(id)
	a.mu.Unlock()
	if err != nil {
		a.engineError(w, err)
		return
	}
	a.json(w, http.StatusOK, p)
}

type fulfillRequest struct {
	Fulfiller string `json:"fulfiller"`
}

func (a *App) PromisesFulfill(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promiseID(w, r)
	if !ok {
		return
	}
	var req fulfillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Fulfiller) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "fulfiller is required")
		return
	}

	a.mu.Lock()
	err := a.Engine.Fulfill(id, req.Fulfiller, a.caller(r))
	a.mu.Unlock()
	if err != nil {
		a.engineError(w, err)
		return
	}

	if a.SQL != nil {
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QMarkFulfilled, id, req.Fulfiller); err != nil {
			a.Logger.Error().Err(err).Uint64("promise", id).Msg("journal fulfill update failed")
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) PromisesWithdraw(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promiseID(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	amount, err := a.Engine.Withdraw(r.Context(), id, a.caller(r))
	a.mu.Unlock()
	if err != nil {
		a.engineError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"id": id, "amount": amount})
}

func (a *App) promiseID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid promise id")
		return 0, false
	}
	return id, true
}
