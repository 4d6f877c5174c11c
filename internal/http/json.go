// Package httpx provides the HTTP transport for the jobtracker API.
package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/jobtracker/jobtracker-api/internal/errors"
)

// maxBodyBytes bounds request bodies accepted by DecodeJSON.
const maxBodyBytes = 1 << 20

// statusClientClosedRequest is the de facto status for a request the client abandoned.
const statusClientClosedRequest = 499

const msgInternal = "Something went wrong, try again later"

// DecodeJSON decodes JSON from the request body into the destination and handles errors.
// Returns true if successful, false if there was an error (error response already written).
// An empty body leaves dst untouched so the service can report the missing values.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeJSON(w, r, dst, true)
}

// DecodeJSONLenient is DecodeJSON without the unknown-field check. Job bodies use it
// because clients round-trip whole job objects, including read-only fields.
func DecodeJSONLenient(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decodeJSON(w, r, dst, false)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, strict bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}

	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: err})
		return false
	}

	return true
}

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// msgResponse is the {"msg": "..."} body used for confirmations and throttling.
type msgResponse struct {
	Msg string `json:"msg"`
}

// WriteMsg writes {"msg": msg} with the given status code.
func WriteMsg(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, msgResponse{Msg: msg})
}

// ErrorParams groups parameters for WriteError to adhere to the ≤3 params guideline.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// statusFor maps an AppError code to the HTTP status and error code written to clients.
func statusFor(code apperrors.ErrorCode) (int, string) {
	switch code {
	case apperrors.ErrCodeUnauthenticated:
		return http.StatusUnauthorized, "unauthenticated"
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden, "read_only_user"
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest, "validation"
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, "not_found"
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, "conflict"
	case apperrors.ErrCodeForeignKey:
		return http.StatusConflict, "foreign_key"
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable, "unavailable"
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, "timeout"
	case apperrors.ErrCodeCanceled:
		return statusClientClosedRequest, "canceled"
	case apperrors.ErrCodeInvalidIdentity:
		return http.StatusInternalServerError, "invalid_identity"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// WriteServiceError renders err from the service layer. AppErrors keep their
// message; server-side failures are logged and replaced with a generic message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		slog.ErrorContext(r.Context(), "unhandled service error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "internal",
			Err:     errors.New(msgInternal),
		})
		return
	}

	status, errCode := statusFor(appErr.Code)
	msg := appErr.Message
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "service error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("code", string(appErr.Code)),
			slog.Any("error", err))
		msg = msgInternal
		if appErr.Code == apperrors.ErrCodeUnavailable {
			msg = appErr.Message
		}
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: errCode, Err: errors.New(msg)})
}
