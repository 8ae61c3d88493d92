package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lumeweb.com/queuemailer/config"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, cache config.CacheMode) *gorm.DB {
	t.Helper()

	db, err := OpenDatabase(config.DatabaseConfig{
		Type:  "sqlite",
		File:  fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		Cache: config.CacheConfig{Mode: cache},
	}, "", core.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestOpenDatabaseMigrates(t *testing.T) {
	db := openTestDB(t, config.CacheModeNone)

	assert.True(t, db.Migrator().HasTable(&models.EmailTemplate{}))
	assert.True(t, db.Migrator().HasTable(&models.Email{}))
	assert.True(t, db.Migrator().HasIndex(&models.EmailTemplate{}, "idx_email_template_name_language"))
	assert.False(t, db.Migrator().HasColumn(&models.EmailTemplate{}, "deleted_at"))
}

func TestOpenDatabaseUnsupportedType(t *testing.T) {
	_, err := OpenDatabase(config.DatabaseConfig{Type: "postgres"}, "", core.NewNopLogger())
	assert.EqualError(t, err, "unsupported database type: postgres")
}

func TestTemplateUniqueIndex(t *testing.T) {
	db := openTestDB(t, config.CacheModeNone)

	require.NoError(t, db.Create(&models.EmailTemplate{Name: "welcome", Language: "en"}).Error)
	require.NoError(t, db.Create(&models.EmailTemplate{Name: "welcome", Language: "de"}).Error)
	assert.Error(t, db.Create(&models.EmailTemplate{Name: "welcome", Language: "en"}).Error)

	// deletes are hard, so the key is free again afterwards
	require.NoError(t, db.Where("name = ? AND language = ?", "welcome", "en").Delete(&models.EmailTemplate{}).Error)
	require.NoError(t, db.Create(&models.EmailTemplate{Name: "welcome", Language: "en"}).Error)
}

func TestMemoryCacheServesRepeatLookups(t *testing.T) {
	db := openTestDB(t, config.CacheModeMemory)

	require.NoError(t, db.Create(&models.EmailTemplate{Name: "welcome", Language: "en", Subject: "Hi"}).Error)

	for i := 0; i < 2; i++ {
		var tpl models.EmailTemplate
		require.NoError(t, db.Where(&models.EmailTemplate{Name: "welcome", Language: "en"}).First(&tpl).Error)
		assert.Equal(t, "Hi", tpl.Subject)
	}
}

func TestRetryableTransaction(t *testing.T) {
	db := openTestDB(t, config.CacheModeNone)

	err := RetryableTransaction(context.Background(), db, func(tx *gorm.DB) *gorm.DB {
		return tx.Create(&models.Email{MessageID: "a", Recipient: "user@example.com"})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Email{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRetryOnLock(t *testing.T) {
	db := openTestDB(t, config.CacheModeNone)

	attempts := 0
	err := RetryOnLock(db, func(tx *gorm.DB) *gorm.DB {
		attempts++
		if attempts == 1 {
			return &gorm.DB{Error: errors.New("database is locked")}
		}
		return &gorm.DB{}
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)

	boom := errors.New("constraint failed")
	err = RetryOnLock(db, func(tx *gorm.DB) *gorm.DB {
		return &gorm.DB{Error: boom}
	})
	assert.ErrorIs(t, err, boom)
}

func TestSqliteFile(t *testing.T) {
	assert.Equal(t, "/etc/queuemailer/queuemailer.db", sqliteFile("queuemailer.db", "/etc/queuemailer"))
	assert.Equal(t, "/var/lib/q.db", sqliteFile("/var/lib/q.db", "/etc/queuemailer"))
	assert.Equal(t, ":memory:", sqliteFile(":memory:", "/etc/queuemailer"))
	assert.Equal(t, "q.db", sqliteFile("q.db", ""))
}

func TestGetCacherInvalidMode(t *testing.T) {
	_, err := getCacher(config.CacheConfig{Mode: "disk"})
	assert.Error(t, err)

	cacher, err := getCacher(config.CacheConfig{Mode: config.CacheModeNone})
	assert.NoError(t, err)
	assert.Nil(t, cacher)
}
