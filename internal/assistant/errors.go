package assistant

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotConfigured = errors.New("assistant API key not configured")
	ErrBusy          = errors.New("assistant is already answering a question")
	ErrEmptyQuery    = errors.New("question is empty")
	ErrEmptyResponse = errors.New("no text content in model response")
	ErrBadRequest    = errors.New("model rejected the request")
	ErrUnauthorized  = errors.New("model API key rejected")
	ErrRateLimited   = errors.New("model rate limit reached")
	ErrUpstream      = errors.New("model API error")
)

// APIError is a non-2xx answer from the model API.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (status %d)", e.kind, e.StatusCode)
	}
	return fmt.Sprintf("%v (status %d): %s", e.kind, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(status int, message string) *APIError {
	var kind error
	switch status {
	case http.StatusBadRequest:
		kind = ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = ErrUnauthorized
	case http.StatusTooManyRequests:
		kind = ErrRateLimited
	default:
		kind = ErrUpstream
	}
	return &APIError{StatusCode: status, Message: message, kind: kind}
}

// UserMessage is the French text shown to the shopper for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotConfigured):
		return "🤖 Assistant temporairement indisponible. Configuration API requise."
	case errors.Is(err, ErrBusy):
		return "⏳ Une question est déjà en cours de traitement."
	case errors.Is(err, ErrBadRequest):
		return "⚠️ Erreur de requête. Veuillez reformuler votre question."
	case errors.Is(err, ErrUnauthorized):
		return "❌ Clé API invalide. Veuillez contacter le support."
	case errors.Is(err, ErrRateLimited):
		return "⏳ Trop de requêtes. Attendez quelques secondes puis réessayez."
	case errors.Is(err, ErrEmptyResponse):
		return "Je n'ai pas pu générer une réponse. Veuillez reformuler."
	default:
		return "😕 Je n'ai pas pu traiter votre demande. Veuillez réessayer."
	}
}
