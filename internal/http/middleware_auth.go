package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jobtracker/jobtracker-api/internal/ports"
)

const bearerPrefix = "Bearer "

//nolint:staticcheck // client-facing messages keep their capitalization.
var (
	errAuthInvalid = errors.New("Authentication invalid")
	errReadOnly    = errors.New("Test User. Read Only!")
)

// RequireBearer returns a middleware that verifies the bearer token and attaches
// the caller identity to the request context. Requests without a valid token get
// a 401 and never reach next.
func RequireBearer(verifier ports.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok || verifier == nil {
				writeUnauthenticated(w)
				return
			}

			id, err := verifier.Verify(token)
			if err != nil {
				writeUnauthenticated(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetIdentityInContext(r.Context(), id)))
		})
	}
}

// RejectRestricted returns a middleware that blocks the read-only demo identity.
// It must run after RequireBearer; a request with no identity is treated as unauthenticated.
func RejectRestricted() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := GetIdentityFromContext(r.Context())
			if !ok {
				writeUnauthenticated(w)
				return
			}
			if !id.CanMutate() {
				WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "read_only_user", Err: errReadOnly})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
	return token, token != ""
}

func writeUnauthenticated(w http.ResponseWriter) {
	WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "unauthenticated", Err: errAuthInvalid})
}
