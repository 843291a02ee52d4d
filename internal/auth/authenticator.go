package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/monocle-dev/notes/internal/models"
	"github.com/monocle-dev/notes/internal/store"
)

type Status int

const (
	MissingCredentials Status = iota
	BadCredentials
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case BadCredentials:
		return "bad_credentials"
	default:
		return "missing_credentials"
	}
}

// Result is the outcome of resolving an Authorization header. User and Claims
// are only set when Status is Authenticated; Claims only for bearer tokens.
type Result struct {
	Status Status
	User   *models.User
	Claims *TokenClaims
}

type burner interface {
	Burn(password string)
}

type Authenticator struct {
	hasher Hasher
	tokens *TokenIssuer
}

// NewAuthenticator accepts a nil issuer, in which case bearer tokens are
// always rejected.
func NewAuthenticator(hasher Hasher, tokens *TokenIssuer) *Authenticator {
	return &Authenticator{hasher: hasher, tokens: tokens}
}

// Authenticate resolves header against users. Only store and hashing failures
// are returned as errors; rejected credentials are reported in the Result.
func (a *Authenticator) Authenticate(ctx context.Context, users store.Store, header string) (Result, error) {
	header = strings.TrimSpace(header)

	if header == "" {
		return Result{Status: MissingCredentials}, nil
	}

	scheme, credentials, ok := strings.Cut(header, " ")
	if !ok {
		return Result{Status: BadCredentials}, nil
	}

	credentials = strings.TrimSpace(credentials)

	switch {
	case strings.EqualFold(scheme, "Basic"):
		return a.basic(ctx, users, credentials)
	case strings.EqualFold(scheme, "Bearer"):
		return a.bearer(ctx, users, credentials)
	default:
		return Result{Status: BadCredentials}, nil
	}
}

func (a *Authenticator) basic(ctx context.Context, users store.Store, credentials string) (Result, error) {
	decoded, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		return Result{Status: BadCredentials}, nil
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok || username == "" {
		return Result{Status: BadCredentials}, nil
	}

	user, err := users.UserGetByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		if b, ok := a.hasher.(burner); ok {
			b.Burn(password)
		}
		return Result{Status: BadCredentials}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("lookup user: %w", err)
	}

	err = a.hasher.Verify(user.PasswordHash, password)
	if errors.Is(err, ErrPasswordMismatch) {
		return Result{Status: BadCredentials}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("verify password: %w", err)
	}

	return Result{Status: Authenticated, User: user}, nil
}

func (a *Authenticator) bearer(ctx context.Context, users store.Store, token string) (Result, error) {
	if a.tokens == nil || token == "" {
		return Result{Status: BadCredentials}, nil
	}

	claims, err := a.tokens.Verify(ctx, token)
	if errors.Is(err, ErrInvalidToken) {
		return Result{Status: BadCredentials}, nil
	}
	if err != nil {
		return Result{}, err
	}

	user, err := users.UserGet(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return Result{Status: BadCredentials}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("lookup user: %w", err)
	}

	return Result{Status: Authenticated, User: user, Claims: claims}, nil
}
