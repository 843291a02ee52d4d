package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/monocle-dev/notes/internal/auth"
	"github.com/monocle-dev/notes/internal/models"
	"github.com/monocle-dev/notes/internal/store"
)

// EnsureAdmin makes sure an admin account named username exists. A missing
// account is created; an existing non-admin account is promoted. The password
// of an existing account is left untouched.
func EnsureAdmin(ctx context.Context, s store.Store, hasher auth.Hasher, username, password string) (*models.User, error) {
	user, err := s.UserGetByUsername(ctx, username)

	switch {
	case err == nil && user.IsAdmin():
		return user, nil
	case err == nil:
		role := models.RoleAdmin
		user, err = s.UserUpdate(ctx, user.ID, store.UserFields{Role: &role})
		if err != nil {
			return nil, fmt.Errorf("promote %s: %w", username, err)
		}
		log.Printf("Promoted existing user %q to admin", username)
		return user, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("lookup %s: %w", username, err)
	}

	passwordHash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	user, err = s.UserCreate(ctx, username, passwordHash, models.RoleAdmin)
	if errors.Is(err, store.ErrConflict) {
		// Created concurrently by another instance.
		return EnsureAdmin(ctx, s, hasher, username, password)
	}
	if err != nil {
		return nil, fmt.Errorf("create admin %s: %w", username, err)
	}

	log.Printf("Created admin user %q", username)
	return user, nil
}
