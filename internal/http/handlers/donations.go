package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"promisecard/internal/middleware"
	"promisecard/internal/sqlinline"
)

type donationRequest struct {
	Asset string `json:"asset"`
	// Amount is the gross donation in the asset's smallest unit.
	Amount uint64 `json:"amount"`
	// AttachedValue is the native value sent along with the call. Must
	// equal Amount for native promises and be zero for token promises.
	AttachedValue uint64 `json:"attached_value"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promiseID(w, r)
	if !ok {
		return
	}
	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	donor := a.caller(r)
	a.mu.Lock()
	net, err := a.Engine.Donate(r.Context(), id, req.Asset, req.Amount, req.AttachedValue, donor)
	a.mu.Unlock()
	if err != nil {
		a.engineError(w, err)
		return
	}

	if a.SQL != nil {
		props := map[string]string{}
		if country := middleware.CountryFromContext(r.Context()); country != "" {
			props["country"] = country
		}
		propsJSON, _ := json.Marshal(props)
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QInsertDonation,
			id, donor, req.Asset, req.Amount, req.Amount-net, net, propsJSON); err != nil {
			a.Logger.Error().Err(err).Uint64("promise", id).Str("donor", donor).Msg("journal donation insert failed")
		}
	}

	a.json(w, http.StatusCreated, map[string]any{
		"promise_id": id,
		"donor":      donor,
		"gross":      req.Amount,
		"net":        net,
	})
}

func (a *App) DonationsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promiseID(w, r)
	if !ok {
		return
	}
	donor := chi.URLParam(r, "principal")

	a.mu.Lock()
	_, err := a.Engine.Get(id)
	total := a.Engine.Donation(id, donor)
	a.mu.Unlock()
	if err != nil {
		a.engineError(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"promise_id": id,
		"donor":      donor,
		"total_net":  total,
	})
}
