package shortlink

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
	keyPrefix    = "shortlink:"
)

// Store maps short codes to recipe IDs in redis. Codes are stable per
// recipe: once assigned, the same recipe resolves to the same code.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a short-link store backed by the given redis client
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: 0}
}

// CodeFor returns the short code assigned to the recipe, minting one on
// first use.
func (s *Store) CodeFor(ctx context.Context, recipeID uint) (string, error) {
	reverseKey := keyPrefix + "recipe:" + strconv.FormatUint(uint64(recipeID), 10)

	code, err := s.client.Get(ctx, reverseKey).Result()
	if err == nil {
		return code, nil
	}
	if err != redis.Nil {
		return "", fmt.Errorf("failed to look up short code: %w", err)
	}

	for attempt := 0; attempt < 5; attempt++ {
		code = randomCode()
		ok, err := s.client.SetNX(ctx, keyPrefix+code, recipeID, s.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("failed to store short code: %w", err)
		}
		if ok {
			if err := s.client.Set(ctx, reverseKey, code, s.ttl).Err(); err != nil {
				return "", fmt.Errorf("failed to store reverse mapping: %w", err)
			}
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to mint short code for recipe %d", recipeID)
}

// Resolve returns the recipe ID behind a short code, or (0, nil) when the
// code is unknown.
func (s *Store) Resolve(ctx context.Context, code string) (uint, error) {
	val, err := s.client.Get(ctx, keyPrefix+code).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve short code: %w", err)
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt short code mapping %q: %w", code, err)
	}
	return uint(id), nil
}

func randomCode() string {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	n := binary.BigEndian.Uint64(buf[:])

	out := make([]byte, codeLength)
	for i := range out {
		out[i] = codeAlphabet[n%uint64(len(codeAlphabet))]
		n /= uint64(len(codeAlphabet))
	}
	return string(out)
}
