package identity

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pimify/backend/internal/domain/shared"
)

const (
	// DefaultAPIKeyPrefix prefixes every generated key
	DefaultAPIKeyPrefix = "sk"
	// DefaultMaxKeyAttempts bounds the uniqueness loop
	DefaultMaxKeyAttempts = 5

	apiKeySegmentLength = 16
	apiKeyEntropyChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-#@^!"
)

// ErrAPIKeyExhausted is returned when every attempt produced a key that already exists
var ErrAPIKeyExhausted = shared.NewDomainError("API_KEY_EXHAUSTED", "Could not generate a unique API key")

// GenerateAPIKey returns a token of the form
// {prefix}_{hex unix seconds}_{16-char nanoid}_{16 chars of mixed entropy}.
func GenerateAPIKey(prefix string) (string, error) {
	return generateAPIKeyAt(prefix, time.Now())
}

func generateAPIKeyAt(prefix string, now time.Time) (string, error) {
	if prefix == "" {
		prefix = DefaultAPIKeyPrefix
	}
	nano, err := gonanoid.New(apiKeySegmentLength)
	if err != nil {
		return "", fmt.Errorf("generate key segment: %w", err)
	}
	entropy, err := randomString(apiKeyEntropyChars, apiKeySegmentLength)
	if err != nil {
		return "", fmt.Errorf("generate key entropy: %w", err)
	}
	ts := strconv.FormatInt(now.Unix(), 16)
	return prefix + "_" + ts + "_" + nano + "_" + entropy, nil
}

func randomString(alphabet string, n int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// KeyExistsFunc reports whether a key is already stored
type KeyExistsFunc func(ctx context.Context, key string) (bool, error)

// KeyIssuer generates keys until one is not yet stored, giving up after MaxAttempts.
type KeyIssuer struct {
	Prefix      string
	MaxAttempts int
	generate    func(prefix string) (string, error)
}

// NewKeyIssuer creates an issuer; non-positive attempts fall back to the default
func NewKeyIssuer(prefix string, maxAttempts int) *KeyIssuer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxKeyAttempts
	}
	return &KeyIssuer{Prefix: prefix, MaxAttempts: maxAttempts, generate: GenerateAPIKey}
}

// WithGenerator swaps the token source
func (i *KeyIssuer) WithGenerator(gen func(prefix string) (string, error)) *KeyIssuer {
	i.generate = gen
	return i
}

// Issue returns a key for which exists reports false.
// Errors from exists are returned as-is (wrapped) without further attempts.
func (i *KeyIssuer) Issue(ctx context.Context, exists KeyExistsFunc) (string, error) {
	gen := i.generate
	if gen == nil {
		gen = GenerateAPIKey
	}
	for attempt := 0; attempt < i.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		key, err := gen(i.Prefix)
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("check api key uniqueness: %w", err)
		}
		if !taken {
			return key, nil
		}
	}
	return "", ErrAPIKeyExhausted
}
