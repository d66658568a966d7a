package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/domain"
)

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	q, err := hotelsQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.E.Catalog.Search(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, page, nil)
}

func hotelsQuery(r *http.Request) (domain.HotelsQuery, error) {
	qs := r.URL.Query()
	q := domain.HotelsQuery{
		Location:   qs.Get("location"),
		Amenities:  listParam(r, "amenities"),
		Categories: listParam(r, "categories"),
		Sort:       domain.SortBy(qs.Get("sortBy")),
	}
	for _, p := range []struct {
		name string
		dst  **int64
	}{{"minPrice", &q.MinPrice}, {"maxPrice", &q.MaxPrice}} {
		if s := qs.Get(p.name); s != "" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil || n < 0 {
				return q, domain.Errorf(domain.CodeValidation, "%s must be a non-negative integer", p.name)
			}
			*p.dst = &n
		}
	}
	if s := qs.Get("minRating"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || f > 5 {
			return q, domain.Errorf(domain.CodeValidation, "minRating must be a number between 0 and 5")
		}
		q.MinRating = &f
	}
	guests, err := intParam(r, "guests", 0)
	if err != nil {
		return q, err
	}
	q.Guests = guests
	q.Page, err = pageParam(r)
	return q, err
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.E.Catalog.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, hotel)
}

func (h *Handlers) featuredHotels(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", domain.DefaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.E.Catalog.Featured(r.Context(), clampLimit(limit)))
}

func (h *Handlers) popularHotels(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", domain.DefaultLimit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, h.E.Catalog.Popular(r.Context(), clampLimit(limit)))
}

func clampLimit(n int) int { return domain.PageQuery{Page: 1, Limit: n}.Normalize().Limit }

func (h *Handlers) availability(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	guests := 0
	if s := qs.Get("guests"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, r, domain.Errorf(domain.CodeValidation, "guests must be an integer"))
			return
		}
		guests = n
	}
	a, err := h.E.Catalog.CheckAvailability(r.Context(), chi.URLParam(r, "id"), qs.Get("checkIn"), qs.Get("checkOut"), guests)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, a)
}

func (h *Handlers) destinations(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.E.Locations.Suggest(r.Context(), r.URL.Query().Get("q")))
}
