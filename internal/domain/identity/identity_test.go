package identity

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pimify/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var apiKeyFormat = regexp.MustCompile(`^sk_[0-9a-f]+_[A-Za-z0-9_-]{16}_[A-Za-z0-9_\-#@^!]{16}$`)

func TestGenerateAPIKey(t *testing.T) {
	t.Run("matches documented format", func(t *testing.T) {
		key, err := GenerateAPIKey("")
		require.NoError(t, err)
		assert.Regexp(t, apiKeyFormat, key)
	})

	t.Run("embeds hex timestamp", func(t *testing.T) {
		key, err := generateAPIKeyAt("pk", time.Unix(0x65a0bc00, 0))
		require.NoError(t, err)
		assert.True(t, len(key) > 0)
		assert.Equal(t, "pk_65a0bc00_", key[:12])
	})

	t.Run("N keys are N distinct tokens", func(t *testing.T) {
		const n = 500
		seen := make(map[string]struct{}, n)
		for i := 0; i < n; i++ {
			key, err := GenerateAPIKey(DefaultAPIKeyPrefix)
			require.NoError(t, err)
			require.Regexp(t, apiKeyFormat, key)
			seen[key] = struct{}{}
		}
		assert.Len(t, seen, n)
	})
}

func TestKeyIssuer_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first free key", func(t *testing.T) {
		calls := 0
		issuer := NewKeyIssuer("sk", 5)
		key, err := issuer.Issue(ctx, func(context.Context, string) (bool, error) {
			calls++
			return calls < 3, nil
		})
		require.NoError(t, err)
		assert.Regexp(t, apiKeyFormat, key)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		issuer := NewKeyIssuer("sk", 4).WithGenerator(func(string) (string, error) { return "sk_dup", nil })
		_, err := issuer.Issue(ctx, func(context.Context, string) (bool, error) {
			calls++
			return true, nil
		})
		assert.ErrorIs(t, err, ErrAPIKeyExhausted)
		assert.Equal(t, 4, calls)
	})

	t.Run("surfaces storage errors without retrying", func(t *testing.T) {
		storageErr := errors.New("connection refused")
		calls := 0
		issuer := NewKeyIssuer("sk", 5)
		_, err := issuer.Issue(ctx, func(context.Context, string) (bool, error) {
			calls++
			return false, storageErr
		})
		assert.ErrorIs(t, err, storageErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("defaults attempts", func(t *testing.T) {
		assert.Equal(t, DefaultMaxKeyAttempts, NewKeyIssuer("", 0).MaxAttempts)
	})
}

func TestNewAPIKey(t *testing.T) {
	t.Run("requires name", func(t *testing.T) {
		_, err := NewAPIKey("  ", "sk_x")
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Name is required", verr.Fields["name"])
	})

	t.Run("masks token", func(t *testing.T) {
		k, err := NewAPIKey("CI", "sk_65a0bc00_abcdefghijklmnop_ABCDEFGHIJKLMNOP")
		require.NoError(t, err)
		assert.True(t, k.IsActive)
		assert.Equal(t, "sk_65a0bc00_...", k.Masked())
	})
}

func TestNewOrganization(t *testing.T) {
	t.Run("pins the singleton id", func(t *testing.T) {
		o, err := NewOrganization(OrganizationInput{Name: "Pimify", Website: "https://pimify.io"})
		require.NoError(t, err)
		assert.Equal(t, OrganizationID, o.ID)
	})

	t.Run("validates optional contact fields", func(t *testing.T) {
		_, err := NewOrganization(OrganizationInput{Name: "Pimify", Email: "x", Website: "nope"})
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "website")
	})
}

func TestNewStaffUser(t *testing.T) {
	u, err := NewStaffUser(" Admin ", "correct-horse", false)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
	assert.True(t, u.VerifyPassword("correct-horse"))
	assert.False(t, u.VerifyPassword("wrong"))
	assert.True(t, u.CanAccessBackOffice())

	u.IsActive = false
	assert.False(t, u.CanAccessBackOffice())

	_, err = NewStaffUser("x", "short", false)
	require.Error(t, err)
}
