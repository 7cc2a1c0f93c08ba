package database

import (
	"path/filepath"
	"testing"

	"speedballhub/config"
	"speedballhub/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test database initialization and core functionality

func TestNew_InvalidConfig(t *testing.T) {
	invalidConfig := config.Config{
		DatabaseDbPath:       "",
		DatabaseCacheAddress: "",
		DatabaseCachePort:    0,
	}

	_, err := New(invalidConfig)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_Success(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	testConfig := config.Config{
		DatabaseDbPath: dbPath,
	}

	err := db.initializeSQLiteDB(&gorm.Config{}, testConfig)
	assert.NoError(t, err)
	assert.NotNil(t, db.SQL)

	// Verify database file was created
	assert.FileExists(t, dbPath)

	if db.SQL != nil {
		sqlDB, _ := db.SQL.DB()
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}
}

func TestInitializeSQLiteDB_EmptyPath(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	testConfig := config.Config{
		DatabaseDbPath: "",
	}

	err := db.initializeSQLiteDB(&gorm.Config{}, testConfig)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB_InMemory(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	testConfig := config.Config{
		DatabaseDbPath: ":memory:",
	}

	err := db.initializeSQLiteDB(&gorm.Config{}, testConfig)
	assert.NoError(t, err)
	assert.NotNil(t, db.SQL)

	sqlDB, err := db.SQL.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	_ = sqlDB.Close()
}

func TestInitializeSQLiteDB_ForeignKeysEnabled(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	testConfig := config.Config{
		DatabaseDbPath: ":memory:",
	}

	require.NoError(t, db.initializeSQLiteDB(&gorm.Config{}, testConfig))

	var enabled int
	require.NoError(t, db.SQL.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled, "foreign key enforcement should be on")
}

func TestMigrate_CreatesSchema(t *testing.T) {
	db := &DB{
		log: logger.New("test"),
	}

	testConfig := config.Config{
		DatabaseDbPath: ":memory:",
	}

	require.NoError(t, db.initializeSQLiteDB(&gorm.Config{}, testConfig))

	applied, err := db.Migrate()
	require.NoError(t, err)
	assert.Greater(t, applied, 0)

	for _, table := range []string{"players", "tests", "test_results"} {
		var count int
		err := db.SQL.Raw(
			"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&count).Error
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}

	// Migrations are idempotent
	applied, err = db.Migrate()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}
