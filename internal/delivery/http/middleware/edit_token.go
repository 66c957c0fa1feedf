package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	h "meetgrid/internal/delivery/http/helpers"
	"meetgrid/internal/domain"
)

// EditTokenHeader is an alternative to "Authorization: Bearer <token>".
const EditTokenHeader = "X-Edit-Token"

func editToken(r *http.Request) (string, bool) {
	if t := strings.TrimSpace(r.Header.Get(EditTokenHeader)); t != "" {
		return t, true
	}
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", auth != ""
	}
	t := strings.TrimSpace(auth[len(prefix):])
	return t, true
}

// RequireEditToken returns a wrapper guarding routes with a {responseID} path
// value. A presented token must verify and name that response, else 401 or
// 403. When enforce is false, requests without any token pass through.
func RequireEditToken(verifier domain.EditTokenVerifier, logger *slog.Logger, enforce bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, present := editToken(r)
			if !present {
				if enforce {
					h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing edit token")
					return
				}
				next(w, r)
				return
			}
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			responseID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "edit token rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired edit token")
				return
			}
			if responseID != r.PathValue("responseID") {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "edit token does not match this response")
				return
			}
			next(w, r.WithContext(SetResponseID(r.Context(), responseID)))
		}
	}
}
