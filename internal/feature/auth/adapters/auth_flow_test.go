package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"messagely_backend/internal/feature/auth/usecase"
	jwtmw "messagely_backend/internal/platform/jwt"
)

// TestAuthFlow exercises the full credential path against a real repository:
// registration, authentication, login, token round-trip.
func TestAuthFlow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	tokens := jwtmw.NewManager("flow-test-secret", time.Hour)
	uc := usecase.NewAuthUsecase(repo, tokens, bcrypt.MinCost)
	ctx := context.Background()

	// Register returns a token that decodes back to the username
	token, err := uc.Register(ctx, "alice", "pw", "A", "B", "555")
	require.NoError(t, err, "registration failed")
	username, err := tokens.Verify(token)
	require.NoError(t, err, "registration token did not verify")
	assert.Equal(t, "alice", username)

	// Authentication right after registration succeeds
	ok, err := uc.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok, "freshly registered credentials should authenticate")

	// Wrong password is a mismatch, not an error
	ok, err = uc.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// Unknown username is an error, distinct from a mismatch
	_, err = uc.Authenticate(ctx, "nobody", "anything")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	// Duplicate registration fails and leaves the first profile intact
	_, err = uc.Register(ctx, "alice", "other", "X", "Y", "999")
	assert.ErrorIs(t, err, usecase.ErrUsernameTaken)
	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "A", found.FirstName, "first registration was modified")

	// Login issues a fresh token and moves last_login_at past join_at
	time.Sleep(10 * time.Millisecond)
	token, err = uc.Login(ctx, "alice", "pw")
	require.NoError(t, err, "login failed")
	username, err = tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	found, err = repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.True(t, found.LastLoginAt.After(found.JoinAt), "last login should be after join")
}
