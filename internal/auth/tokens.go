package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/monocle-dev/notes/internal/models"
	"gorm.io/gorm"
)

var ErrTokenNotRecorded = errors.New("token not recorded")

// TokenRecords stores the issuance record of every live bearer token.
type TokenRecords interface {
	Record(ctx context.Context, id string, userID uint, expiresAt time.Time) error
	// Lookup returns ErrTokenNotRecorded for unknown, revoked or expired ids.
	Lookup(ctx context.Context, id string) (uint, error)
	Revoke(ctx context.Context, id string) error
}

type DBTokenRecords struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBTokenRecords(db *gorm.DB) *DBTokenRecords {
	return &DBTokenRecords{db: db, now: time.Now}
}

func (r *DBTokenRecords) Record(ctx context.Context, id string, userID uint, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&models.AuthToken{
		ID:        id,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
	}).Error
}

func (r *DBTokenRecords) Lookup(ctx context.Context, id string) (uint, error) {
	var record models.AuthToken

	err := r.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, r.now().UTC()).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrTokenNotRecorded
	}
	if err != nil {
		return 0, err
	}

	return record.UserID, nil
}

func (r *DBTokenRecords) Revoke(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AuthToken{}).Error
}

// PurgeExpired drops records whose tokens can no longer be presented.
func (r *DBTokenRecords) PurgeExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", r.now().UTC()).Delete(&models.AuthToken{})
	return result.RowsAffected, result.Error
}

// RedisTokenRecords keeps one key per token that expires together with it.
type RedisTokenRecords struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenRecords(client *redis.Client) *RedisTokenRecords {
	return &RedisTokenRecords{client: client, prefix: "notes:token:"}
}

func (r *RedisTokenRecords) Record(ctx context.Context, id string, userID uint, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	return r.client.Set(ctx, r.prefix+id, userID, ttl).Err()
}

func (r *RedisTokenRecords) Lookup(ctx context.Context, id string) (uint, error) {
	userID, err := r.client.Get(ctx, r.prefix+id).Uint64()

	if errors.Is(err, redis.Nil) {
		return 0, ErrTokenNotRecorded
	}
	if err != nil {
		return 0, err
	}

	return uint(userID), nil
}

func (r *RedisTokenRecords) Revoke(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.prefix+id).Err()
}
