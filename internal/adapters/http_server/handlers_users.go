package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hotel_booking/internal/domain"
)

func (h *Handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.E.Favorites.List(r.Context(), userID(r)))
}

func (h *Handlers) addFavorite(w http.ResponseWriter, r *http.Request) {
	f, err := h.E.Favorites.Add(r.Context(), userID(r), chi.URLParam(r, "hotelId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, f)
}

func (h *Handlers) removeFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.E.Favorites.Remove(r.Context(), userID(r), chi.URLParam(r, "hotelId")); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, message{"removed from favorites"})
}

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	pg, err := pageParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	unread := false
	if s := r.URL.Query().Get("unreadOnly"); s != "" {
		if unread, err = strconv.ParseBool(s); err != nil {
			writeError(w, r, domain.Errorf(domain.CodeValidation, "unreadOnly must be true or false"))
			return
		}
	}
	out := h.E.Notifications.List(r.Context(), userID(r), unread, pg)
	writeList(w, out.Page, map[string]int{"unreadCount": out.UnreadCount})
}

func (h *Handlers) markRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.E.Notifications.MarkRead(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, n)
}

func (h *Handlers) markAllRead(w http.ResponseWriter, r *http.Request) {
	n := h.E.Notifications.MarkAllRead(r.Context(), userID(r))
	writeData(w, http.StatusOK, map[string]int{"updated": n})
}
