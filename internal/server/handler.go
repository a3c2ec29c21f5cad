package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cleared-dev/runway/internal/model"
	"github.com/cleared-dev/runway/internal/report"
)

// Handler serves read-only views of a single projection.
type Handler struct {
	history  model.History
	currency string
	// accounts are the chart defaults when no account is requested.
	accounts []string
}

// NewHandler creates a Handler over a completed history.
func NewHandler(history model.History, currency string, accounts []string) *Handler {
	return &Handler{history: history, currency: currency, accounts: accounts}
}

// BalancesDTO is one day of the /api/balances response.
type BalancesDTO struct {
	Date     string            `json:"date"`
	Balances map[string]string `json:"balances"`
	Total    string            `json:"total"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Balances lists balances, optionally filtered by ?filter=month-end|month-start|all.
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	filter := report.FilterAll
	if s := r.URL.Query().Get("filter"); s != "" {
		f, err := report.ParseFilter(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid filter", err)
			return
		}
		filter = f
	}

	entries := filter.Apply(h.history)
	resp := make([]BalancesDTO, 0, len(entries))
	for _, e := range entries {
		dto := BalancesDTO{
			Date:     e.Date.Format("2006-01-02"),
			Balances: make(map[string]string, len(e.Balances)),
			Total:    e.Balances.Total().StringFixed(2),
		}
		for name, v := range e.Balances {
			dto.Balances[name] = v.StringFixed(2)
		}
		resp = append(resp, dto)
	}
	writeJSON(w, http.StatusOK, resp)
}

// AccountSeries returns one account's balance history as CSV.
func (h *Handler) AccountSeries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	points, err := report.Series(h.history, name)
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	if err := report.WriteSeriesCSV(w, points); err != nil {
		writeError(w, http.StatusInternalServerError, "writing csv", err)
	}
}

// Postings returns every posting as CSV.
func (h *Handler) Postings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	if err := report.WritePostingsCSV(w, h.history); err != nil {
		writeError(w, http.StatusInternalServerError, "writing csv", err)
	}
}

// Chart renders an HTML chart of ?account=... (repeatable).
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	names := r.URL.Query()["account"]
	if len(names) == 0 {
		names = h.accounts
	}

	series := make([]report.ChartSeries, 0, len(names))
	for _, name := range names {
		points, err := report.Series(h.history, name)
		if err != nil {
			writeError(w, http.StatusNotFound, "account not found", err)
			return
		}
		series = append(series, report.ChartSeries{Name: name, Points: points})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteChart(w, "Balance projection", h.currency, series...); err != nil {
		writeError(w, http.StatusInternalServerError, "rendering chart", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
