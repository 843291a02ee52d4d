package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/monocle-dev/notes/db"
	"github.com/monocle-dev/notes/internal/auth"
	"github.com/monocle-dev/notes/internal/models"
	"github.com/monocle-dev/notes/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OpenTestDB opens a migrated in-memory SQLite database private to the test.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Shared cache keeps the database alive for as long as one connection is
	// open; the random name keeps tests apart.
	conn, err := db.Connect(db.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.MigrateDatabase(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return conn
}

// NewHasher returns a bcrypt hasher at the minimum cost.
func NewHasher(t *testing.T) *auth.BcryptHasher {
	t.Helper()

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}

	return hasher
}

// CreateUser inserts a user with the given password directly into the store.
func CreateUser(t *testing.T, s store.Store, hasher auth.Hasher, username, password, role string) *models.User {
	t.Helper()

	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user, err := s.UserCreate(context.Background(), username, hash, role)
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}

	return user
}
