package domain

import (
	"errors"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/validate"
	"github.com/google/uuid"
)

var ErrInvalidUserID = errors.New("invalid user id")

// userID ends up as the suffix of the connection's default room, so it has to
// fit the room identifier charset.
var validateUserID = validate.Field("userId",
	validate.Required(),
	validate.MaxLength(64),
	validate.Matches(`^[A-Za-z0-9_-]+$`, "must contain only letters, digits, '_' or '-'"),
)

// Identity is the authenticated principal behind one live connection.
type Identity struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
}

// NewIdentity validates the user id and assigns a fresh session id when the
// caller did not supply one.
func NewIdentity(userID, sessionID string) (Identity, error) {
	if err := validateUserID(userID); err != nil {
		return Identity{}, errors.Join(ErrInvalidUserID, err)
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	return Identity{UserID: userID, SessionID: sessionID}, nil
}
