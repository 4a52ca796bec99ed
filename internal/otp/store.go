// Package otp issues and verifies one-time codes for booking confirmation.
// Codes live in Redis with a bounded TTL so state survives process restarts
// and expires on its own.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps pending codes keyed by email address.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a code store. ttl bounds how long a code stays valid.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if client == nil {
		panic("otp: redis client required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{client: client, ttl: ttl}
}

func key(email string) string {
	return "otp:" + email
}

// Put stores the code for the address, replacing any pending one.
func (s *Store) Put(ctx context.Context, email, code string) error {
	if err := s.client.Set(ctx, key(email), code, s.ttl).Err(); err != nil {
		return fmt.Errorf("otp: store code: %w", err)
	}
	return nil
}

// Verify consumes the pending code if it matches. Expired or absent codes
// simply fail verification.
func (s *Store) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, key(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("otp: load code: %w", err)
	}
	if stored != code {
		return false, nil
	}
	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return false, fmt.Errorf("otp: consume code: %w", err)
	}
	return true, nil
}

// GenerateCode returns a random six-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
