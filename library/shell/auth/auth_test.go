package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AntonStoeckl/biblioteca/library/shell/auth"
)

func Test_PasswordHasher_HashAndMatch(t *testing.T) {
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")

	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, hasher.Matches(hash, "s3cret"))
	assert.False(t, hasher.Matches(hash, "wrong"))
	assert.False(t, hasher.Matches("not-a-hash", "s3cret"))
}

func Test_TokenIssuer_IssueAndVerify(t *testing.T) {
	// arrange
	issuer, err := auth.NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	// act
	token, err := issuer.Issue("user-1", "Bibliotecario")
	require.NoError(t, err)
	principal, err := issuer.Verify(token)

	// assert
	require.NoError(t, err)
	assert.Equal(t, auth.Principal{UserID: "user-1", Role: "Bibliotecario"}, principal)
}

func Test_TokenIssuer_RejectsExpiredTokens(t *testing.T) {
	// arrange
	issuedAt := time.Now().Add(-2 * time.Hour)
	past, err := auth.NewTokenIssuer("secret", time.Hour, auth.WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)
	current, err := auth.NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	token, err := past.Issue("user-1", "Lector")
	require.NoError(t, err)

	// act
	_, err = current.Verify(token)

	// assert
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func Test_TokenIssuer_RejectsForeignSignatures(t *testing.T) {
	mine, err := auth.NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	theirs, err := auth.NewTokenIssuer("other", time.Hour)
	require.NoError(t, err)

	token, err := theirs.Issue("user-1", "Administrador")
	require.NoError(t, err)

	_, err = mine.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = mine.Verify("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func Test_NewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := auth.NewTokenIssuer("", time.Hour)

	assert.ErrorIs(t, err, auth.ErrEmptySecret)
}

func Test_PrincipalFrom(t *testing.T) {
	_, ok := auth.PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := auth.WithPrincipal(context.Background(), auth.Principal{UserID: "u", Role: "Lector"})
	principal, ok := auth.PrincipalFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u", principal.UserID)
}
