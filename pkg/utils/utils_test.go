package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	sub := TokenSubject{
		UserID:      uuid.New(),
		Email:       "cashier@example.com",
		BranchCode:  "JR",
		Roles:       []string{"manager"},
		Permissions: []string{"access-pos"},
	}

	token, err := m.GenerateAccessToken(sub)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, sub.UserID, claims.UserID)
	assert.Equal(t, "JR", claims.BranchCode)
	assert.Equal(t, []string{"access-pos"}, claims.Permissions)
}

func TestJWTRejectsForeignSecretAndExpiry(t *testing.T) {
	issuer := NewJWTManager("one", time.Hour)
	token, err := issuer.GenerateAccessToken(TokenSubject{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)

	expired := NewJWTManager("one", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateAccessToken(TokenSubject{UserID: uuid.New()})
	require.NoError(t, err)
	_, err = issuer.ValidateAccessToken(old)
	assert.Error(t, err)
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, "JR", NormalizeBranchCode(" jr "))
	assert.Equal(t, "03001234567", NormalizePhone("0300-123 4567"))
	assert.Equal(t, `JR\_1\%`, EscapeLike("JR_1%"))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret-pass", "not-a-hash"))
}
