package gorm

import (
	"fmt"
	"testing"

	"github.com/nagomiya/todokit/usersvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	libgorm "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *libgorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := libgorm.Open(sqlite.Open(dsn), &libgorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usersvc.User{}))

	return db
}

func TestUserRepositoryCreateAndLookup(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	created, err := repo.Create("alice", "a@x.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	byName, err := repo.UserByName("alice")
	require.NoError(t, err)
	assert.Equal(t, created, byName)

	byEmail, err := repo.UserByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	_, err := repo.UserByName("nobody")
	assert.ErrorIs(t, err, usersvc.ErrUserNotFound)

	_, err = repo.UserByEmail("nobody@x.com")
	assert.ErrorIs(t, err, usersvc.ErrUserNotFound)
}

func TestUserRepositoryUniqueConstraints(t *testing.T) {
	repo := NewUserRepository(testDB(t))

	_, err := repo.Create("alice", "a@x.com", "hash")
	require.NoError(t, err)

	_, err = repo.Create("alice", "other@x.com", "hash")
	assert.Error(t, err)

	_, err = repo.Create("other", "a@x.com", "hash")
	assert.Error(t, err)
}
