package domain_test

import (
	"testing"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		sessionID string
		wantErr   bool
	}{
		{name: "valid", userID: "u1", sessionID: "s1"},
		{name: "underscore and dash", userID: "abc_123-x", sessionID: ""},
		{name: "empty user", userID: "", wantErr: true},
		{name: "whitespace user", userID: "  ", wantErr: true},
		{name: "disallowed characters", userID: "useré", wantErr: true},
		{name: "space in user", userID: "a b", wantErr: true},
		{name: "too long", userID: string(make([]byte, 65)), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := domain.NewIdentity(tt.userID, tt.sessionID)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidUserID)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, identity.UserID)
			assert.NotEmpty(t, identity.SessionID, "session id is generated when absent")
			if tt.sessionID != "" {
				assert.Equal(t, tt.sessionID, identity.SessionID)
			}
		})
	}
}
