package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var in app.CreateBookingInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.E.Bookings.Create(r.Context(), userID(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.E.Bookings.GetByID(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, b)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	res, err := h.E.Bookings.Cancel(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	pg, err := pageParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := domain.BookingFilter(r.URL.Query().Get("status"))
	page, err := h.E.Bookings.ListForUser(r.Context(), userID(r), filter, pg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, page, nil)
}
