package handlers

import (
	"net/http"

	"promisecard/internal/sqlinline"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	if a.SQL == nil {
		a.error(w, http.StatusServiceUnavailable, "unavailable", "journal not configured")
		return
	}

	row := a.SQL.QueryRow(r.Context(), sqlinline.QStatsSummary)
	var promises, fulfilled, donations, donations24 int64
	var gross, fee, net string
	if err := row.Scan(&promises, &fulfilled, &donations, &gross, &fee, &net, &donations24); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"promises":           promises,
		"promises_fulfilled": fulfilled,
		"donations":          donations,
		"gross_total":        gross,
		"fee_total":          fee,
		"net_total":          net,
		"donations_last_24h": donations24,
	})
}
