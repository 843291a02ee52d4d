package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type TokenClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs bearer tokens and keeps an issuance record per token. A
// token whose record is missing is rejected even if its signature is valid.
type TokenIssuer struct {
	secret  []byte
	ttl     time.Duration
	records TokenRecords
	now     func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration, records TokenRecords) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret is not set")
	}

	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	return &TokenIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		records: records,
		now:     time.Now,
	}, nil
}

func (i *TokenIssuer) Issue(ctx context.Context, userID uint) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl).Truncate(time.Second)
	id := uuid.NewString()

	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	if err := i.records.Record(ctx, id, userID, expiresAt); err != nil {
		return "", time.Time{}, fmt.Errorf("record token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature, expiry and the issuance record, and returns the
// claims of a token that is still honoured.
func (i *TokenIssuer) Verify(ctx context.Context, tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())

	if err != nil || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	userID, err := i.records.Lookup(ctx, claims.ID)
	if errors.Is(err, ErrTokenNotRecorded) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("lookup token: %w", err)
	}

	if userID != claims.UserID {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (i *TokenIssuer) Revoke(ctx context.Context, claims *TokenClaims) error {
	return i.records.Revoke(ctx, claims.ID)
}
