package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) deals(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.E.Deals.Deals(r.Context()))
}

func (h *Handlers) deal(w http.ResponseWriter, r *http.Request) {
	d, err := h.E.Deals.Deal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, d)
}

func (h *Handlers) trending(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.E.Deals.Trending(r.Context()))
}

func (h *Handlers) trendingByID(w http.ResponseWriter, r *http.Request) {
	d, err := h.E.Deals.TrendingByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, d)
}

func (h *Handlers) lastMinute(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.E.Deals.LastMinute(r.Context()))
}

func (h *Handlers) lastMinuteByID(w http.ResponseWriter, r *http.Request) {
	d, err := h.E.Deals.LastMinuteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, d)
}
