package authtoken_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/auth"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/presentation/handler/authtoken"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*authtoken.Handler, *auth.Authenticator) {
	t.Helper()

	authenticator, err := auth.New(auth.Options{Secret: []byte("handler-test-secret"), Alg: "HS256", TTL: time.Hour})
	require.NoError(t, err)
	return authtoken.NewHandler(authenticator), authenticator
}

func TestIssueTokenHandler(t *testing.T) {
	handler, authenticator := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"userId":"u1"}`))
	rec := httptest.NewRecorder()

	handler.IssueTokenHandler(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token     string `json:"token"`
		UserID    string `json:"userId"`
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	assert.NotEmpty(t, resp.SessionID, "session id is generated when absent")

	identity, err := authenticator.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, resp.SessionID, identity.SessionID)
}

func TestIssueTokenHandler_InvalidUserID(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"userId":"has space"}`))
	rec := httptest.NewRecorder()

	handler.IssueTokenHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueTokenHandler_BadBody(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"userId":`))
	rec := httptest.NewRecorder()

	handler.IssueTokenHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueTokenHandler_UnknownField(t *testing.T) {
	handler, _ := newHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(`{"userId":"u1","role":"admin"}`))
	rec := httptest.NewRecorder()

	handler.IssueTokenHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown fields are rejected")
}
