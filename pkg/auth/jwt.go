package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingPlayer = errors.New("token has no player id")
)

const ScopePlayer = "player"

// Claims is the payload of the session token issued by the game backend.
type Claims struct {
	PlayerID  string `json:"playerId"`
	SessionID string `json:"sessionId,omitempty"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken signs a player token. The client only needs it for local tooling and tests.
func GenerateToken(playerID, sessionID, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		PlayerID:  playerID,
		SessionID: sessionID,
		Scope:     ScopePlayer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   playerID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParsePlayerToken extracts the claims of a session token. With an empty
// secret the signature is not checked: the backend stays the authority.
func ParsePlayerToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	if secret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
	} else {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return nil, err
		}
		if !token.Valid {
			return nil, ErrInvalidToken
		}
	}

	if claims.PlayerID == "" {
		if claims.Subject == "" {
			return nil, ErrMissingPlayer
		}
		claims.PlayerID = claims.Subject
	}
	return claims, nil
}
