package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/monocle-dev/notes/internal/models"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore expects a handle opened with TranslateError enabled so that
// unique index violations surface as gorm.ErrDuplicatedKey.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return ErrConflict
	default:
		return err
	}
}

// isUniqueViolation catches driver errors that escaped gorm's translation.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

func (s *GormStore) UserGet(ctx context.Context, id uint) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *GormStore) UserGetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *GormStore) UserList(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)

	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// UserCreate relies on the unique index on username; there is no
// check-then-insert window.
func (s *GormStore) UserCreate(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (s *GormStore) UserUpdate(ctx context.Context, id uint, fields UserFields) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})

		if fields.Username != nil {
			updates["username"] = *fields.Username
		}
		if fields.PasswordHash != nil {
			updates["password_hash"] = *fields.PasswordHash
		}
		if fields.Role != nil {
			updates["role"] = *fields.Role
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&user, id).Error
	})

	if err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

// UserDelete removes the user together with its notes and token records in a
// single transaction.
func (s *GormStore) UserDelete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&models.Note{}).Error; err != nil {
			return fmt.Errorf("delete notes: %w", err)
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.AuthToken{}).Error; err != nil {
			return fmt.Errorf("delete tokens: %w", err)
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})

	return translate(err)
}

func (s *GormStore) NoteGet(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note

	if err := s.db.WithContext(ctx).First(&note, id).Error; err != nil {
		return nil, translate(err)
	}

	return &note, nil
}

func (s *GormStore) NoteListVisible(ctx context.Context, viewerID uint) ([]models.Note, error) {
	notes := make([]models.Note, 0)

	err := s.db.WithContext(ctx).
		Where("author_id = ? OR private = ?", viewerID, false).
		Order("id").
		Find(&notes).Error

	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (s *GormStore) NoteCreate(ctx context.Context, authorID uint, text string, private bool) (*models.Note, error) {
	note := models.Note{
		AuthorID: authorID,
		Text:     text,
		Private:  private,
	}

	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, translate(err)
	}

	return &note, nil
}

func (s *GormStore) NoteUpdate(ctx context.Context, id uint, fields NoteFields) (*models.Note, error) {
	var note models.Note

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&note, id).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})

		if fields.Text != nil {
			updates["text"] = *fields.Text
		}
		if fields.Private != nil {
			updates["private"] = *fields.Private
		}

		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&note).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(&note, id).Error
	})

	if err != nil {
		return nil, translate(err)
	}

	return &note, nil
}

func (s *GormStore) NoteDelete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Note{}, id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
