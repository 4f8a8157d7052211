package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-service/internal/domain"
)

const testSecret = "test-secret"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManagerRoundTrip(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := NewTokenManager(testSecret).WithClock(fixedClock(now))

	token, exp, err := tm.Issue(Claims{UserID: 42, Email: "a@x.com", Role: domain.RoleManager}, domain.TokenKindAccess, AccessTokenTTL)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, domain.RoleManager, claims.Role)
	assert.Equal(t, domain.TokenKindAccess, claims.Kind)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, exp.Unix(), claims.ExpiresAt.Unix())

	again, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, claims, again)
}

func TestTokenManagerUniqueIDs(t *testing.T) {
	tm := NewTokenManager(testSecret)
	first, _, err := tm.Issue(Claims{UserID: 1}, domain.TokenKindRefresh, RefreshTokenTTL)
	require.NoError(t, err)
	second, _, err := tm.Issue(Claims{UserID: 1}, domain.TokenKindRefresh, RefreshTokenTTL)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestTokenManagerExpiryBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tm := NewTokenManager(testSecret).WithClock(fixedClock(now))

	t.Run("expired one second ago", func(t *testing.T) {
		token, _, err := tm.Issue(Claims{UserID: 1}, domain.TokenKindAccess, -time.Second)
		require.NoError(t, err)
		_, err = tm.Parse(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("valid for another hour", func(t *testing.T) {
		token, _, err := tm.Issue(Claims{UserID: 1}, domain.TokenKindAccess, time.Hour)
		require.NoError(t, err)
		_, err = tm.Parse(token)
		assert.NoError(t, err)
	})

	t.Run("expires exactly at expiry instant", func(t *testing.T) {
		token, exp, err := tm.Issue(Claims{UserID: 1}, domain.TokenKindAccess, time.Hour)
		require.NoError(t, err)
		_, err = tm.WithClock(fixedClock(exp)).Parse(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestTokenManagerRejectsForgeries(t *testing.T) {
	tm := NewTokenManager(testSecret)
	valid, _, err := tm.Issue(Claims{UserID: 7}, domain.TokenKindAccess, time.Hour)
	require.NoError(t, err)

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	cases := map[string]string{
		"wrong secret": sign(jwt.SigningMethodHS256, []byte("other"), &Claims{
			UserID: 7, Kind: domain.TokenKindAccess,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "7", ExpiresAt: future},
		}),
		"foreign algorithm": sign(jwt.SigningMethodHS512, []byte(testSecret), &Claims{
			UserID: 7, Kind: domain.TokenKindAccess,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "7", ExpiresAt: future},
		}),
		"none algorithm": sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, &Claims{
			UserID: 7, Kind: domain.TokenKindAccess,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "7", ExpiresAt: future},
		}),
		"missing expiry": sign(jwt.SigningMethodHS256, []byte(testSecret), &Claims{
			UserID: 7, Kind: domain.TokenKindAccess,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "7"},
		}),
		"subject mismatch": sign(jwt.SigningMethodHS256, []byte(testSecret), &Claims{
			UserID: 7, Kind: domain.TokenKindAccess,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "8", ExpiresAt: future},
		}),
		"tampered payload": valid[:strings.LastIndex(valid, ".")] + "x" + valid[strings.LastIndex(valid, "."):],
		"garbage":          "not.a.token",
		"empty":            "",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := tm.Parse(token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestTokenManagerRejectsUnknownKind(t *testing.T) {
	_, _, err := NewTokenManager(testSecret).Issue(Claims{UserID: 1}, domain.TokenKind("session"), time.Hour)
	assert.Error(t, err)
}
