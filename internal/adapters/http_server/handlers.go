package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
)

type Handlers struct {
	E   *app.Engine
	Env string
}

type message struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in app.RegisterInput
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.E.Sessions.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.E.Sessions.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.E.Sessions.Logout(r.Context(), bearer(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, message{"logged out"})
}

func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.E.Sessions.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

// forgotPassword answers the same way for known and unknown emails.
func (h *Handlers) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotRequest
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	token, err := h.E.Sessions.ForgotPassword(r.Context(), in.Email)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if token != "" && (h.Env == "dev" || h.Env == "development") {
		log.Debug().Str("reset_token", token).Msg("password reset token (dev only)")
	}
	writeData(w, http.StatusOK, message{"if the email is registered, reset instructions have been sent"})
}

func (h *Handlers) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetRequest
	if err := decode(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.E.Sessions.ResetPassword(r.Context(), in.Token, in.Password); err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, message{"password updated"})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.E.Sessions.Me(r.Context(), userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u)
}
