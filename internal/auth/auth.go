package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// Identity is the authenticated caller extracted from a token.
type Identity struct {
	ID       string
	Username string
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies signed identity tokens. Protected
// handlers call Authenticate directly at the top of the handler body;
// there is no ambient middleware.
type Authenticator struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthenticator constructs an Authenticator with the shared secret.
func NewAuthenticator(jwtSecret string) *Authenticator {
	return &Authenticator{
		secret:   []byte(jwtSecret),
		tokenTTL: defaultTokenTTL,
	}
}

// IssueToken signs a token embedding the identity, valid for seven days.
func (a *Authenticator) IssueToken(id Identity) (string, error) {
	now := time.Now()
	tokenClaims := claims{
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	return token.SignedString(a.secret)
}

// VerifyToken checks signature and expiry and returns the embedded identity.
func (a *Authenticator) VerifyToken(tokenString string) (Identity, error) {
	parsed := claims{}
	token, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid token")
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Identity{}, errors.New("missing subject")
	}
	return Identity{ID: parsed.Subject, Username: parsed.Username}, nil
}

// Authenticate extracts and verifies the bearer token on a request.
func (a *Authenticator) Authenticate(r *http.Request) (Identity, error) {
	tokenString, err := bearerToken(r)
	if err != nil {
		return Identity{}, err
	}
	return a.VerifyToken(tokenString)
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}
