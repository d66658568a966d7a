package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

type errorBody struct {
	Code    domain.Code `json:"code"`
	Message string      `json:"message"`
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type listEnvelope struct {
	Data       any               `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Meta       any               `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func statusFor(c domain.Code) int {
	switch c {
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeUnauthorized, domain.CodeInvalidToken, domain.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeAlreadyExists, domain.CodeUserExists, domain.CodeInvalidStatus:
		return http.StatusConflict
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataEnvelope{Data: v})
}

func writeList[T any](w http.ResponseWriter, p domain.Page[T], meta any) {
	writeJSON(w, http.StatusOK, listEnvelope{Data: p.Items, Pagination: p.Pagination, Meta: meta})
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		log.Error().Err(err).Str("route", routeOf(r)).Msg("unhandled error")
		de = &domain.Error{Code: domain.CodeInternal, Message: "internal server error"}
	}
	msg := de.Message
	if msg == "" {
		msg = strings.ToLower(strings.ReplaceAll(string(de.Code), "_", " "))
	}
	writeJSON(w, statusFor(de.Code), errorEnvelope{Error: errorBody{Code: de.Code, Message: msg}})
}

func domainErr(code domain.Code, msg string) error { return &domain.Error{Code: code, Message: msg} }

// decode reads a JSON body into dst; an empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return domain.Errorf(domain.CodeValidation, "malformed JSON body")
	}
	return nil
}

// ---- query helpers ----

func intParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.Errorf(domain.CodeValidation, "%s must be an integer", name)
	}
	return n, nil
}

func pageParam(r *http.Request) (domain.PageQuery, error) {
	page, err := intParam(r, "page", 1)
	if err != nil {
		return domain.PageQuery{}, err
	}
	limit, err := intParam(r, "limit", domain.DefaultLimit)
	if err != nil {
		return domain.PageQuery{}, err
	}
	return domain.PageQuery{Page: page, Limit: limit}.Normalize(), nil
}

func listParam(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
