package db

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/monocle-dev/notes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openLogged(t *testing.T) (*gorm.DB, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	previous := logOutput
	logOutput = &buf
	t.Cleanup(func() { logOutput = previous })

	conn, err := Connect(DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, MigrateDatabase(conn))
	return conn, &buf
}

func TestConnect_MissingRowsAreNotLogged(t *testing.T) {
	conn, buf := openLogged(t)

	err := conn.First(&models.User{}, 99).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = conn.Where("username = ?", "nobody").First(&models.User{}).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestConnect_FailedQueriesAreLogged(t *testing.T) {
	conn, buf := openLogged(t)

	var n int
	err := conn.Raw("SELECT count(*) FROM missing_table").Scan(&n).Error
	require.Error(t, err)

	assert.Contains(t, buf.String(), "missing_table")
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect("mysql", "")
	assert.EqualError(t, err, `unsupported database driver "mysql"`)
}

func TestConnect_DuplicateKeysTranslated(t *testing.T) {
	conn, _ := openLogged(t)

	require.NoError(t, conn.Create(&models.User{Username: "alice", PasswordHash: "x"}).Error)
	err := conn.Create(&models.User{Username: "alice", PasswordHash: "y"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
