package auth

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/project-service/internal/domain"
)

// Fixed token lifetimes.
const (
	AccessTokenTTL  = time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

var (
	// ErrTokenExpired is returned by Parse once the expiry instant has been reached.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed covers bad signatures, foreign algorithms and corrupt payloads.
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager builds a new manager signing with the given secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of the manager that reads time from now.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	return &TokenManager{secret: tm.secret, now: now}
}

// Claims describes JWT payload.
type Claims struct {
	UserID int64            `json:"user_id"`
	Email  string           `json:"email,omitempty"`
	Role   domain.Role      `json:"user_type,omitempty"`
	Kind   domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// Issue signs claims as a token of the given kind valid for lifetime.
// Kind, subject, jti and timestamps on claims are overwritten.
func (tm *TokenManager) Issue(claims Claims, kind domain.TokenKind, lifetime time.Duration) (string, time.Time, error) {
	if !kind.IsValid() {
		return "", time.Time{}, errors.New("unknown token kind")
	}
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(lifetime)

	claims.Kind = kind
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(claims.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates signature and expiry and returns the claims.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.UserID <= 0 || claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
