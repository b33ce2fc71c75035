package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/doorman-auth/doorman/internal/doorman/store"
	"github.com/doorman-auth/doorman/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestUserServiceRegister(t *testing.T) {
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	ctx := context.Background()

	st := newTestStore(t)
	svc := &UserService{Store: st}

	t.Run("registers and normalizes the email", func(t *testing.T) {
		user, err := svc.Register(ctx, "Bob", "  Bob@Example.COM ", "hunter2hunter2")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "bob@example.com", user.Email)
		require.NotEqual(t, "hunter2hunter2", user.PasswordHash)

		stored, err := st.Users().GetUserByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, user.ID, stored.ID)
	})

	t.Run("duplicate email rejected regardless of case", func(t *testing.T) {
		_, err := svc.Register(ctx, "Bobby", "BOB@example.com", "another-password")
		require.ErrorIs(t, err, ErrDuplicateUser)
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	ctx := context.Background()

	st := newTestStore(t)
	svc := &UserService{Store: st}

	registered, err := svc.Register(ctx, "Carol", "carol@example.com", "correct-horse")
	require.NoError(t, err)

	t.Run("correct password authenticates", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "carol@example.com", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("email is matched case-insensitively", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, " Carol@Example.com ", "correct-horse")
		require.NoError(t, err)
		require.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPass := svc.Authenticate(ctx, "carol@example.com", "wrong-horse")
		require.ErrorIs(t, wrongPass, ErrInvalidCredentials)

		_, unknown := svc.Authenticate(ctx, "nobody@example.com", "correct-horse")
		require.ErrorIs(t, unknown, ErrInvalidCredentials)

		require.Equal(t, wrongPass.Error(), unknown.Error())
	})
}

func TestUserServiceGetUserByID(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := createTestUser(t, st)

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = svc.GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}
