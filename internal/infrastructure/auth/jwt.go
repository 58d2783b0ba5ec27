package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/domain"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken    = errors.New("missing bearer token")
	ErrInvalidToken    = errors.New("invalid token")
	ErrMalformedClaims = errors.New("malformed claims")
)

// Options controls signing algorithm, secret and token lifetime.
type Options struct {
	Secret []byte
	Alg    string        // HS256/HS384/HS512 (default HS256)
	TTL    time.Duration // default 2h
}

// Authenticator verifies handshake credentials and extracts the identity
// carried in the verified claims. Verification is stateless: signature plus
// the standard exp/nbf checks, nothing else.
type Authenticator struct {
	opts   Options
	method jwtlib.SigningMethod
}

func New(opts Options) (*Authenticator, error) {
	method, err := signingMethod(opts.Alg)
	if err != nil {
		return nil, err
	}
	if len(opts.Secret) == 0 {
		return nil, errors.New("auth: empty secret")
	}
	if opts.TTL <= 0 {
		opts.TTL = 2 * time.Hour
	}

	return &Authenticator{opts: opts, method: method}, nil
}

// Generate issues a signed token for the given identity. The session id is
// carried in the private "sid" claim.
func (a *Authenticator) Generate(identity domain.Identity) (token string, expireAt time.Time, err error) {
	now := time.Now()
	exp := now.Add(a.opts.TTL)

	claims := jwtlib.MapClaims{
		"sub": identity.UserID,
		"sid": identity.SessionID,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
	}

	tok := jwtlib.NewWithClaims(a.method, claims)
	signed, err := tok.SignedString(a.opts.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, exp, nil
}

// Verify checks signature and time claims and extracts {userId, sessionId}.
// Any failure refuses the handshake; the caller must not admit the connection.
func (a *Authenticator) Verify(token string) (domain.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Identity{}, ErrMissingToken
	}

	parsed, err := jwtlib.Parse(token, func(t *jwtlib.Token) (interface{}, error) {
		// Only the HMAC family is accepted
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected alg: %v", t.Header["alg"])
		}
		return a.opts.Secret, nil
	})
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Identity{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return domain.Identity{}, ErrMalformedClaims
	}

	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing sub claim", ErrMalformedClaims)
	}

	// sid is optional; an empty session id is tolerated.
	sessionID, _ := claims["sid"].(string)

	return domain.Identity{UserID: userID, SessionID: sessionID}, nil
}

// BearerToken extracts the credential from an Authorization header value,
// tolerating the "Bearer " prefix in any casing.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("bearer "):])
	}
	return header
}

func signingMethod(alg string) (jwtlib.SigningMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(alg)) {
	case "", "HS256":
		return jwtlib.SigningMethodHS256, nil
	case "HS384":
		return jwtlib.SigningMethodHS384, nil
	case "HS512":
		return jwtlib.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("unsupported alg: %s (use HS256/HS384/HS512)", alg)
	}
}
