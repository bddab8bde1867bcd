package middleware

import (
	"net/http"

	"github.com/mcoot/rpsarena/internal/middleware"
)

// RequestID tags each API request with an ID
func RequestID(next http.Handler) http.Handler {
	return middleware.RequestID(next)
}
