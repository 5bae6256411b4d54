package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	token, expiresAt, err := tm.Issue("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	subjectID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", subjectID)
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	// Force issuance of an already-expired token.
	tm := &TokenManager{secret: []byte("super-secret"), ttl: -time.Minute}

	token, _, err := tm.Issue("user-123")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager("right-secret", time.Hour)
	verifier := NewTokenManager("wrong-secret", time.Hour)

	token, _, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("super-secret", time.Hour)

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.Verify(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewTokenManager_TTLFallback(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("secret", 0)
	assert.Equal(t, time.Hour, tm.ttl)
}
