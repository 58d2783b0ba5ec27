package authtoken

import "time"

type issueTokenRequest struct {
	UserID    string `json:"userId" example:"u1"`
	SessionID string `json:"sessionId,omitempty"`
}

type issueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserID    string    `json:"userId"`
	SessionID string    `json:"sessionId"`
}
