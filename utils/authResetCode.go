package utils

import (
	"SolidarityHospital/cache"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// ResetCodeExpiry is how long a password reset code stays valid.
const ResetCodeExpiry = 15 * time.Minute

// GenerateResetCode generates a random 6-digit reset code.
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ResetCodes keeps password reset codes in the cache, keyed by lower-cased email.
type ResetCodes struct {
	cache cache.Cache
}

func NewResetCodes(c cache.Cache) *ResetCodes {
	return &ResetCodes{cache: c}
}

func resetCodeKey(email string) string {
	return "reset_code:" + strings.ToLower(strings.TrimSpace(email))
}

func (r *ResetCodes) Set(ctx context.Context, email, code string) error {
	return r.cache.Set(ctx, resetCodeKey(email), code, ResetCodeExpiry)
}

// Get returns "" when no code is pending for email.
func (r *ResetCodes) Get(ctx context.Context, email string) (string, error) {
	return r.cache.Get(ctx, resetCodeKey(email))
}

func (r *ResetCodes) Delete(ctx context.Context, email string) error {
	return r.cache.Delete(ctx, resetCodeKey(email))
}
