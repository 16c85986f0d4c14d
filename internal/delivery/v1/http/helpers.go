package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/google/uuid"
)

const (
	cartCookieName   = "cart_id"
	cartCookieMaxAge = 30 * 24 * time.Hour
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrEmptyCartID):
		return http.StatusBadRequest, e.ErrEmptyCartID.Error()
	case errors.Is(err, e.ErrTooManyRequests):
		return http.StatusTooManyRequests, e.ErrTooManyRequests.Error()
	case errors.Is(err, e.ErrFetchFailure):
		return http.StatusServiceUnavailable, e.ErrFetchFailure.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// cartID возвращает ID корзины из cookie, выдавая новый при первом обращении.
func cartID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cartCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cartCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}
