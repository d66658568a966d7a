package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

type reviewsMeta struct {
	Rating       float64             `json:"rating"`
	ReviewCount  int                 `json:"reviewCount"`
	Distribution domain.Distribution `json:"distribution"`
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	pg, err := pageParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sortBy := domain.ReviewSort(r.URL.Query().Get("sortBy"))
	out, err := h.E.Reviews.ListForHotel(r.Context(), chi.URLParam(r, "id"), pg, sortBy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, out.Page, reviewsMeta{Rating: out.Rating, ReviewCount: out.ReviewCount, Distribution: out.Distribution})
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var in app.CreateReviewInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.E.Reviews.Create(r.Context(), userID(r), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *Handlers) markHelpful(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	n, err := h.E.Reviews.MarkHelpful(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"reviewId": id, "helpfulCount": n})
}
