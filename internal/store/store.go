// Package store is the persistence contract the HTTP handlers rely on.
//
// Every operation returns either a value, ErrNotFound or ErrConflict (unique
// constraint violation). Any other error is an internal failure.
package store

import (
	"context"
	"errors"

	"github.com/monocle-dev/notes/internal/models"
)

var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: conflict")
)

// UserFields holds the columns of a user. On update, nil fields keep their
// stored value.
type UserFields struct {
	Username     *string
	PasswordHash *string
	Role         *string
}

// NoteFields holds the mutable columns of a note. On update, nil fields keep
// their stored value.
type NoteFields struct {
	Text    *string
	Private *bool
}

type Store interface {
	UserGet(ctx context.Context, id uint) (*models.User, error)
	UserGetByUsername(ctx context.Context, username string) (*models.User, error)
	UserList(ctx context.Context) ([]models.User, error)
	UserCreate(ctx context.Context, username, passwordHash, role string) (*models.User, error)
	UserUpdate(ctx context.Context, id uint, fields UserFields) (*models.User, error)
	UserDelete(ctx context.Context, id uint) error

	NoteGet(ctx context.Context, id uint) (*models.Note, error)
	NoteListVisible(ctx context.Context, viewerID uint) ([]models.Note, error)
	NoteCreate(ctx context.Context, authorID uint, text string, private bool) (*models.Note, error)
	NoteUpdate(ctx context.Context, id uint, fields NoteFields) (*models.Note, error)
	NoteDelete(ctx context.Context, id uint) error

	// Ping reports whether the backing database answers.
	Ping(ctx context.Context) error
}
