package auth

import (
	"testing"
	"time"

	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndVerify(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)
	user := &domain.User{ID: 7, Email: "owner@example.com", Role: domain.RoleAdmin}

	token, exp, err := manager.Issue(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	identity, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "owner@example.com", identity.Email)
	assert.Equal(t, domain.RoleAdmin, identity.Role)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	token, _, err := NewManager("secret-one", time.Hour).Issue(&domain.User{ID: 1})
	require.NoError(t, err)

	identity, err := NewManager("secret-two", time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestManager_Verify_Expired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)
	token, _, err := manager.Issue(&domain.User{ID: 1})
	require.NoError(t, err)

	identity, err := manager.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestManager_Verify_Garbage(t *testing.T) {
	identity, err := NewManager("test-secret", time.Hour).Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, identity)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}
