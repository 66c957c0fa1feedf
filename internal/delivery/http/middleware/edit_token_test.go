package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	h "meetgrid/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeVerifier accepts "good-<responseID>" tokens.
type fakeVerifier struct{}

func (fakeVerifier) Verify(token string) (string, error) {
	if len(token) > 5 && token[:5] == "good-" {
		return token[5:], nil
	}
	return "", errors.New("bad token")
}

func TestRequireEditToken(t *testing.T) {
	tests := []struct {
		name       string
		enforce    bool
		header     string
		value      string
		wantStatus int
		wantCode   string
		wantCtxID  string
	}{
		{name: "bearer token", enforce: true, header: "Authorization", value: "Bearer good-r1", wantStatus: http.StatusOK, wantCtxID: "r1"},
		{name: "edit token header", enforce: true, header: EditTokenHeader, value: "good-r1", wantStatus: http.StatusOK, wantCtxID: "r1"},
		{name: "missing enforced", enforce: true, wantStatus: http.StatusUnauthorized, wantCode: h.ErrCodeUnauthorized},
		{name: "missing optional", enforce: false, wantStatus: http.StatusOK},
		{name: "wrong scheme", enforce: false, header: "Authorization", value: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: h.ErrCodeUnauthorized},
		{name: "invalid token", enforce: false, header: "Authorization", value: "Bearer nope", wantStatus: http.StatusUnauthorized, wantCode: h.ErrCodeUnauthorized},
		{name: "other response", enforce: true, header: EditTokenHeader, value: "good-r2", wantStatus: http.StatusForbidden, wantCode: h.ErrCodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			var called bool
			next := func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotID, _ = ResponseIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}
			mux := http.NewServeMux()
			mux.HandleFunc("PUT /api/responses/{responseID}/availability", RequireEditToken(fakeVerifier{}, testLogger, tt.enforce)(next))

			req := httptest.NewRequest(http.MethodPut, "/api/responses/r1/availability", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.False(t, called)
				var resp h.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}
			assert.True(t, called)
			assert.Equal(t, tt.wantCtxID, gotID)
		})
	}
}
