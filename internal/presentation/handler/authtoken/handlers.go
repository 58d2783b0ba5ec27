package authtoken

import (
	"errors"
	"net/http"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/domain"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/auth"
	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/json"
)

type Handler struct {
	authenticator *auth.Authenticator
}

func NewHandler(authenticator *auth.Authenticator) *Handler {
	return &Handler{authenticator: authenticator}
}

// IssueTokenHandler godoc
// @Summary      Issue a gateway token
// @Description  Signs a JWT for the given user id; a session id is generated when absent
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body issueTokenRequest true "Token parameters"
// @Success      201 {object} issueTokenResponse "Token issued"
// @Failure      400 {object} json.ErrorResponse "Validation error"
// @Failure      500 {object} json.ErrorResponse "Internal server error"
// @Router       /auth/token [post]
func (h *Handler) IssueTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	identity, err := domain.NewIdentity(req.UserID, req.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUserID) {
			json.WriteValidationError(w, err)
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	token, expiresAt, err := h.authenticator.Generate(identity)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, issueTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
	})
}
