package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"github.com/rs/zerolog/log"
)

// AccessTokenExpiry is the lifetime of a session access token.
const AccessTokenExpiry = 24 * time.Hour

var (
	ErrInvalidSymmetricKey   = errors.New("symmetric key must be 32 bytes long")
	ErrTokenExpired          = errors.New("token expired")
	ErrInsufficientPrivilege = errors.New("insufficient permissions")
)

// TokenClaims is the data carried by an access token.
type TokenClaims struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Expiry   time.Time `json:"expiry"`
}

// TokenIssuer encrypts and decrypts PASETO v2 local tokens with a symmetric key.
type TokenIssuer struct {
	key    []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenIssuer(symmetricKey string) (*TokenIssuer, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSymmetricKey, len(symmetricKey))
	}
	return &TokenIssuer{key: []byte(symmetricKey), expiry: AccessTokenExpiry, now: time.Now}, nil
}

// GenerateAccessToken issues a token for the given username and role.
func (t *TokenIssuer) GenerateAccessToken(username, role string) (string, error) {
	claims := TokenClaims{
		Username: username,
		Role:     role,
		Expiry:   t.now().Add(t.expiry),
	}
	token, err := paseto.NewV2().Encrypt(t.key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateToken decrypts the token, checks its expiry and, when roles are given,
// requires the token role to be one of them.
func (t *TokenIssuer) ValidateToken(token string, requiredRoles ...string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(token, t.key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if t.now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}

	if len(requiredRoles) == 0 {
		return &claims, nil
	}
	for _, role := range requiredRoles {
		if claims.Role == role {
			return &claims, nil
		}
	}

	log.Debug().Strs("required", requiredRoles).Str("role", claims.Role).Msg("Insufficient permissions")
	return nil, ErrInsufficientPrivilege
}
