package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testIssuer = "doorman-test"

var (
	accessSecret  = []byte("test-access-secret-0123456789abc")
	refreshSecret = []byte("test-refresh-secret-0123456789ab")
)

func signAccess(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	signer, err := NewSignerHS256(accessSecret)
	require.NoError(t, err)
	token, err := signer.Sign(NewClaims(subject, PurposeAccess, ttl, testIssuer, time.Now().UTC()))
	require.NoError(t, err)
	return token
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	token := signAccess(t, "user-123", time.Minute)

	v, err := NewVerifierHS256(accessSecret, testIssuer, PurposeAccess)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, PurposeAccess, claims.Purpose)
}

func TestPurposeSeparation(t *testing.T) {
	t.Parallel()

	accessSigner, err := NewSignerHS256(accessSecret)
	require.NoError(t, err)
	refreshSigner, err := NewSignerHS256(refreshSecret)
	require.NoError(t, err)

	now := time.Now().UTC()
	accessToken, err := accessSigner.Sign(NewClaims("u1", PurposeAccess, time.Minute, testIssuer, now))
	require.NoError(t, err)
	refreshToken, err := refreshSigner.Sign(NewClaims("u1", PurposeRefresh, time.Hour, testIssuer, now))
	require.NoError(t, err)

	accessVerifier, err := NewVerifierHS256(accessSecret, testIssuer, PurposeAccess)
	require.NoError(t, err)
	refreshVerifier, err := NewVerifierHS256(refreshSecret, testIssuer, PurposeRefresh)
	require.NoError(t, err)

	t.Run("refresh token rejected by access verifier", func(t *testing.T) {
		_, err := accessVerifier.Verify(refreshToken)
		require.Error(t, err)
		require.False(t, IsExpired(err), "cross-purpose failure must never look like expiry")
	})

	t.Run("access token rejected by refresh verifier", func(t *testing.T) {
		_, err := refreshVerifier.Verify(accessToken)
		require.Error(t, err)
		require.False(t, IsExpired(err))
	})

	t.Run("purpose claim checked even with shared secret", func(t *testing.T) {
		// A misconfigured deployment could reuse one secret for both
		// purposes. The purpose claim is the second fence.
		sameSecretVerifier, err := NewVerifierHS256(accessSecret, testIssuer, PurposeRefresh)
		require.NoError(t, err)

		_, err = sameSecretVerifier.Verify(accessToken)
		require.ErrorIs(t, err, ErrPurpose)
	})
}

func TestExpiryBoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	expires := issued.Add(15 * time.Minute)

	signer, err := NewSignerHS256(accessSecret)
	require.NoError(t, err)
	token, err := signer.Sign(NewClaims("u1", PurposeAccess, 15*time.Minute, testIssuer, issued))
	require.NoError(t, err)

	base, err := NewVerifierHS256(accessSecret, testIssuer, PurposeAccess)
	require.NoError(t, err)

	t.Run("one second before expiry", func(t *testing.T) {
		v := base.WithNow(func() time.Time { return expires.Add(-time.Second) })
		_, err := v.Verify(token)
		require.NoError(t, err)
	})

	t.Run("exactly at expiry", func(t *testing.T) {
		v := base.WithNow(func() time.Time { return expires })
		_, err := v.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})

	t.Run("after expiry", func(t *testing.T) {
		v := base.WithNow(func() time.Time { return expires.Add(time.Hour) })
		_, err := v.Verify(token)
		require.ErrorIs(t, err, ErrExpired)
	})
}

func TestTamperedTokenIsInvalidNotExpired(t *testing.T) {
	t.Parallel()

	// Expired AND tampered: the signature failure must win so the caller
	// never attempts a refresh for a forged token.
	signer, err := NewSignerHS256(accessSecret)
	require.NoError(t, err)
	token, err := signer.Sign(NewClaims("u1", PurposeAccess, -time.Minute, testIssuer, time.Now().UTC()))
	require.NoError(t, err)

	// Corrupt the first character of the signature segment. The trailing
	// characters only carry base64 padding bits, so they are no good for
	// simulating a forgery.
	dot := strings.LastIndex(token, ".")
	tampered := []byte(token)
	tampered[dot+1] ^= 0x01

	v, err := NewVerifierHS256(accessSecret, testIssuer, PurposeAccess)
	require.NoError(t, err)

	_, err = v.Verify(string(tampered))
	require.ErrorIs(t, err, ErrInvalid)
	require.False(t, IsExpired(err))
}

func TestIssuerMismatch(t *testing.T) {
	t.Parallel()

	token := signAccess(t, "u1", time.Minute)

	v, err := NewVerifierHS256(accessSecret, "someone-else", PurposeAccess)
	require.NoError(t, err)

	_, err = v.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestMintedTokensAreDistinct(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC().Truncate(time.Second)
	a := NewClaims("u1", PurposeAccess, time.Minute, testIssuer, now)
	b := NewClaims("u1", PurposeAccess, time.Minute, testIssuer, now)

	// Same subject, same second: the random jti still separates them.
	require.NotEqual(t, a.ID, b.ID)

	signer, err := NewSignerHS256(accessSecret)
	require.NoError(t, err)
	ta, err := signer.Sign(a)
	require.NoError(t, err)
	tb, err := signer.Sign(b)
	require.NoError(t, err)
	require.NotEqual(t, ta, tb)
}

func TestEmptySecretRejected(t *testing.T) {
	t.Parallel()

	_, err := NewSignerHS256(nil)
	require.ErrorIs(t, err, ErrNoSecret)

	_, err = NewVerifierHS256([]byte{}, testIssuer, PurposeAccess)
	require.ErrorIs(t, err, ErrNoSecret)
}

func TestMalformedToken(t *testing.T) {
	t.Parallel()

	v, err := NewVerifierHS256(accessSecret, testIssuer, PurposeAccess)
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		_, err := v.Verify(tok)
		require.ErrorIs(t, err, ErrInvalid, "token %q", tok)
	}
}
