package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (a *App) FaucetClaim(w http.ResponseWriter, r *http.Request) {
	caller := a.caller(r)
	a.mu.Lock()
	amount, err := a.Engine.ClaimFaucet(r.Context(), caller)
	claimedAt := a.Engine.LastClaim(caller)
	a.mu.Unlock()
	if err != nil {
		a.engineError(w, err)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"principal":   caller,
		"amount_paid": amount,
		"claimed_at":  claimedAt.UTC().Format(time.RFC3339),
	})
}

func (a *App) AccountsGet(w http.ResponseWriter, r *http.Request) {
	principal := chi.URLParam(r, "principal")

	a.mu.Lock()
	reputation := a.Engine.Reputation(principal)
	lastClaim := a.Engine.LastClaim(principal)
	a.mu.Unlock()

	var last any
	if !lastClaim.IsZero() {
		last = lastClaim.UTC().Format(time.RFC3339)
	}
	a.json(w, http.StatusOK, map[string]any{
		"principal":         principal,
		"reputation":        reputation,
		"last_faucet_claim": last,
	})
}
